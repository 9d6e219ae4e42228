package dtos

import (
	"time"

	"github.com/justsurfingit/govconnect/internal/models"
)

const snippetLength = 200

type SearchQuery struct {
	PageQuery
	Q    string `form:"q"`
	Type string `form:"type" binding:"omitempty,oneof=all jobs companies discussions"`
}

type SearchJob struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	Type        string    `json:"type"`
	Company     string    `json:"company"`
	Applicants  int       `json:"applicants"`
	CreatedAt   time.Time `json:"createdAt"`
}

type SearchCompany struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Location    string `json:"location"`
	Followers   int    `json:"followers"`
}

type SearchDiscussion struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Category  string    `json:"category"`
	Author    Person    `json:"author"`
	Likes     int       `json:"likes"`
	Replies   int       `json:"replies"`
	CreatedAt time.Time `json:"createdAt"`
}

type SearchResults struct {
	Jobs        []SearchJob        `json:"jobs"`
	Companies   []SearchCompany    `json:"companies"`
	Discussions []SearchDiscussion `json:"discussions"`
	Total       int64              `json:"total"`
}

func NewSearchJob(job *models.Job) SearchJob {
	return SearchJob{
		ID:          job.ID,
		Title:       job.Title,
		Description: Snippet(job.Description, snippetLength),
		Location:    job.Location,
		Type:        job.Type,
		Company:     companyName(&job.Company),
		Applicants:  job.ApplicantCount,
		CreatedAt:   job.CreatedAt,
	}
}

func NewSearchCompany(u *models.User) SearchCompany {
	return SearchCompany{
		ID:          u.ID,
		Name:        companyName(u),
		Description: Snippet(u.Profile.Description, snippetLength),
		Location:    u.Profile.Location,
		Followers:   u.Profile.Followers,
	}
}

func NewSearchDiscussion(d *models.Discussion, replies int) SearchDiscussion {
	return SearchDiscussion{
		ID:        d.ID,
		Title:     d.Title,
		Content:   Snippet(d.Content, snippetLength),
		Category:  d.Category,
		Author:    NewPerson(&d.Author),
		Likes:     d.LikeCount,
		Replies:   replies,
		CreatedAt: d.CreatedAt,
	}
}

type StudentStats struct {
	TotalApplications    int64            `json:"totalApplications"`
	SavedJobs            int64            `json:"savedJobs"`
	DiscussionPosts      int64            `json:"discussionPosts"`
	Resumes              int64            `json:"resumes"`
	ApplicationsByStatus map[string]int64 `json:"applicationsByStatus"`
}

type CompanyStats struct {
	JobPosts             int64            `json:"jobPosts"`
	ActiveJobs           int64            `json:"activeJobs"`
	TotalApplications    int64            `json:"totalApplications"`
	CompanyUpdates       int64            `json:"companyUpdates"`
	Followers            int              `json:"followers"`
	ApplicationsByStatus map[string]int64 `json:"applicationsByStatus"`
	JobsByType           map[string]int64 `json:"jobsByType"`
}

type AdminStats struct {
	Users          int64            `json:"users"`
	UsersByType    map[string]int64 `json:"usersByType"`
	Jobs           int64            `json:"jobs"`
	Applications   int64            `json:"applications"`
	Discussions    int64            `json:"discussions"`
	CompanyUpdates int64            `json:"companyUpdates"`
	Resumes        int64            `json:"resumes"`
}

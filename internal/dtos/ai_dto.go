package dtos

type GenerateResumeRequest struct {
	LinkedInURL   string   `json:"linkedInUrl" binding:"omitempty,url"`
	UploadedFiles []string `json:"uploadedFiles" binding:"max=10"`
	Prompt        string   `json:"prompt" binding:"required,max=5000"`
}

type GenerateResumeResult struct {
	Resume string `json:"resume" describe:"the complete resume as plain text" validate:"required"`
}

type VerifyResumeRequest struct {
	ResumeText string `json:"resumeText" binding:"required,max=50000"`
}

type VerifyResumeResult struct {
	IsGenuine bool   `json:"isGenuine" describe:"true if the resume looks like a real candidate's resume"`
	Feedback  string `json:"feedback" describe:"short explanation of the verdict" validate:"required"`
}

type NewsArticle struct {
	Title       string `json:"title" describe:"headline" validate:"required"`
	Description string `json:"description" describe:"two or three sentence summary" validate:"required"`
	Hint        string `json:"hint" describe:"one or two keywords for an illustrative image"`
}

type NewsResult struct {
	Articles []NewsArticle `json:"articles" describe:"exactly three articles" validate:"required,min=1,dive"`
}

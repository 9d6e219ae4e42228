package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/justsurfingit/govconnect/internal/dtos"
	"github.com/justsurfingit/govconnect/internal/response"
	"github.com/justsurfingit/govconnect/internal/services"
)

type SearchHandler struct {
	SearchService *services.SearchService
	StatsService  *services.StatsService
}

func NewSearchHandler(search *services.SearchService, stats *services.StatsService) *SearchHandler {
	return &SearchHandler{SearchService: search, StatsService: stats}
}

// Search is GET /api/search?q=&type=. Searching everything is not paginated.
func (h *SearchHandler) Search(c *gin.Context) {
	var q dtos.SearchQuery
	if !bindQuery(c, &q) {
		return
	}
	kind := q.Type
	if kind == "" {
		kind = services.SearchAll
	}
	page := services.NewPage(q.Page, q.Limit)
	res, err := h.SearchService.Search(c.Request.Context(), q.Q, kind, page)
	if err != nil {
		response.Error(c, err)
		return
	}

	out := dtos.SearchResults{
		Jobs:        make([]dtos.SearchJob, 0, len(res.Jobs)),
		Companies:   make([]dtos.SearchCompany, 0, len(res.Companies)),
		Discussions: make([]dtos.SearchDiscussion, 0, len(res.Discussions)),
		Total:       res.Total,
	}
	for i := range res.Jobs {
		out.Jobs = append(out.Jobs, dtos.NewSearchJob(&res.Jobs[i]))
	}
	for i := range res.Companies {
		out.Companies = append(out.Companies, dtos.NewSearchCompany(&res.Companies[i]))
	}
	for i := range res.Discussions {
		d := &res.Discussions[i]
		out.Discussions = append(out.Discussions, dtos.NewSearchDiscussion(d, res.ReplyCounts[d.ID]))
	}

	body := gin.H{"query": q.Q, "type": kind, "results": out}
	if kind != services.SearchAll {
		body["pagination"] = page.Result(res.Total)
	}
	c.JSON(http.StatusOK, body)
}

// Stats is GET /api/stats; the shape depends on the caller's role.
func (h *SearchHandler) Stats(c *gin.Context) {
	stats, err := h.StatsService.Stats(c.Request.Context(), viewer(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"stats": stats})
}

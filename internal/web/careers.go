package web

import (
	"errors"
	"github.com/gin-gonic/gin"
	"github.com/quantumstack/site/internal/entities"
	"github.com/quantumstack/site/internal/services"
	"github.com/quantumstack/site/internal/ui"
	"net/http"
	"time"
)

const defaultApplyDelay = ui.DefaultApplyDelay

func (s *Server) careers(c *gin.Context) {
	jobs := s.deps.Listings.Jobs(c.Request.Context())
	s.renderCareers(c, http.StatusOK, jobs, parseCardQuery(c), "", nil, nil)
}

// apply runs the card's submit cycle for one posted application and renders the
// submitted card. The page reloads to the expanded card once the reset delay passes;
// other cards keep the state carried in the query.
func (s *Server) apply(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	job, found := s.deps.Listings.Job(ctx, id)
	if !found {
		s.notFound(c)
		return
	}
	jobs := s.deps.Listings.Jobs(ctx)
	q := parseCardQuery(c).with(id, true, id)

	var application entities.JobApplication
	if err := c.ShouldBind(&application); err != nil {
		s.renderCareers(c, http.StatusBadRequest, jobs, q, id, func(v *jobCardView) {
			v.FormError = ui.GenericErrorMessage
		}, nil)
		return
	}

	err := s.deps.Applications.Apply(ctx, job, &application)

	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		s.renderCareers(c, http.StatusUnprocessableEntity, jobs, q, id, func(v *jobCardView) {
			v.Form = application
			v.FieldErrors = verr.Fields
		}, nil)
		return
	case err != nil:
		s.renderCareers(c, http.StatusInternalServerError, jobs, q, id, func(v *jobCardView) {
			v.Form = application
			v.FormError = ui.GenericErrorMessage
		}, nil)
		return
	}

	card := ui.NewJobCard(ui.WithSubmitDelay(s.cfg.ApplyDelay))
	defer card.Close()
	card.Toggle()
	card.OpenForm()

	done, err := card.Submit()
	if err != nil {
		c.Status(http.StatusConflict)
		return
	}
	select {
	case <-done:
	case <-ctx.Done():
		return
	}

	back := refresh{
		Seconds: int(ui.ResetDelay / time.Second),
		URL:     q.with(id, true, "").url(jobs, jobAnchor(id)),
	}
	s.renderCareers(c, http.StatusOK, jobs, q, id, func(v *jobCardView) {
		v.State = card.State()
	}, &back)
}

func (s *Server) renderCareers(c *gin.Context, status int, jobs []entities.JobOpening, q cardQuery,
	target string, update func(v *jobCardView), r *refresh) {

	cards := jobCards(jobs, q)
	if update != nil {
		for i := range cards {
			if cards[i].Job.ID == target {
				update(&cards[i])
			}
		}
	}

	s.render(c, status, "careers.html", "Careers", gin.H{
		"Jobs":    cards,
		"Perks":   s.deps.Content.Perks,
		"Refresh": r,
	})
}

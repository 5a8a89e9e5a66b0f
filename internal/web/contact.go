package web

import (
	"errors"
	"github.com/gin-gonic/gin"
	"github.com/quantumstack/site/internal/entities"
	"github.com/quantumstack/site/internal/services"
	"github.com/quantumstack/site/internal/ui"
	log "github.com/sirupsen/logrus"
	"net/http"
	"time"
)

func (s *Server) contactPage(c *gin.Context) {
	form := ui.NewContactForm(ui.ResetDelay)
	defer form.Close()
	s.renderContact(c, http.StatusOK, form)
}

func (s *Server) submitContact(c *gin.Context) {
	form := ui.NewContactForm(ui.ResetDelay)
	defer form.Close()

	var submission entities.ContactSubmission
	if err := c.ShouldBind(&submission); err != nil {
		log.Debugf("malformed contact form from %s: %v", c.ClientIP(), err)
		_ = form.Begin(submission)
		form.Fail()
		s.renderContact(c, http.StatusBadRequest, form)
		return
	}

	if verr := s.deps.Contact.Validate(&submission); verr != nil {
		_ = form.Reject(submission, verr.Fields)
		s.renderContact(c, http.StatusUnprocessableEntity, form)
		return
	}

	if err := form.Begin(submission); err != nil {
		c.Status(http.StatusConflict)
		return
	}

	status := http.StatusOK
	if err := s.deps.Contact.Submit(c.Request.Context(), c.ClientIP(), submission); err != nil {
		form.Fail()
		status = http.StatusBadGateway
		if errors.Is(err, services.ErrRateLimited) {
			status = http.StatusTooManyRequests
		}
	} else {
		form.Succeed()
	}

	s.renderContact(c, status, form)
}

func (s *Server) renderContact(c *gin.Context, status int, form *ui.ContactForm) {
	view := form.View()

	var r *refresh
	if view.Status == ui.ContactSuccess {
		r = &refresh{Seconds: int(ui.ResetDelay / time.Second), URL: "/contact"}
	}

	s.render(c, status, "contact.html", "Contact Us", gin.H{
		"Form":    view,
		"Refresh": r,
	})
}

func (s *Server) submitContactJSON(c *gin.Context) {
	var submission entities.ContactSubmission
	if err := c.ShouldBindJSON(&submission); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format"})
		return
	}

	err := s.deps.Contact.Submit(c.Request.Context(), c.ClientIP(), submission)

	var verr *services.ValidationError
	switch {
	case err == nil:
		c.JSON(http.StatusCreated, gin.H{"status": "sent"})
	case errors.As(err, &verr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": verr.Fields})
	case errors.Is(err, services.ErrRateLimited):
		c.JSON(http.StatusTooManyRequests, gin.H{"error": ui.GenericErrorMessage})
	default:
		c.JSON(http.StatusBadGateway, gin.H{"error": ui.GenericErrorMessage})
	}
}

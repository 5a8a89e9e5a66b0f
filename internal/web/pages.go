package web

import (
	"github.com/gin-gonic/gin"
	"github.com/quantumstack/site/internal/logger"
	log "github.com/sirupsen/logrus"
	"net/http"
)

func (s *Server) render(c *gin.Context, status int, name, title string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["Title"] = title
	data["Company"] = s.deps.Content.Company
	data["Navigation"] = navigation
	data["Path"] = c.Request.URL.Path

	c.HTML(status, name, data)

	for _, err := range c.Errors {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeTemplate).Errorf("failed to render %s: %v", name, err)
	}
}

func (s *Server) home(c *gin.Context) {
	s.render(c, http.StatusOK, "home.html", "Home", gin.H{"Home": s.deps.Content.Home})
}

func (s *Server) about(c *gin.Context) {
	s.render(c, http.StatusOK, "about.html", "About Us", gin.H{"About": s.deps.Content.About})
}

func (s *Server) services(c *gin.Context) {
	s.render(c, http.StatusOK, "services.html", "Our Services", gin.H{"Services": s.deps.Content.Services})
}

func (s *Server) portfolio(c *gin.Context) {
	groups := s.deps.Listings.Portfolio(c.Request.Context())
	s.render(c, http.StatusOK, "portfolio.html", "Portfolio", gin.H{
		"Empty":    groups.Empty(),
		"Featured": projectCards(groups.Featured),
		"All":      projectCards(groups.All),
	})
}

func (s *Server) staff(c *gin.Context) {
	s.render(c, http.StatusOK, "staff.html", "Our Team", gin.H{
		"Staff": s.deps.Listings.Staff(c.Request.Context()),
	})
}

func (s *Server) staffDetail(c *gin.Context) {
	member, found := s.deps.Listings.StaffMember(c.Request.Context(), c.Param("slug"))
	if !found {
		s.render(c, http.StatusNotFound, "not_found.html", "Not Found", gin.H{
			"Message": "We couldn't find that team member.",
		})
		return
	}
	s.render(c, http.StatusOK, "staff_detail.html", member.FullName, gin.H{"Member": member})
}

func (s *Server) notFound(c *gin.Context) {
	s.render(c, http.StatusNotFound, "not_found.html", "Not Found", gin.H{
		"Message": "The page you are looking for does not exist.",
	})
}

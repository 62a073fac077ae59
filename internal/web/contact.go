package web

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/google/uuid"

	"github.com/RahulKumar035/portfolio/internal/contact"
	"github.com/RahulKumar035/portfolio/internal/observability"
)

const (
	formIDField  = "form_id"
	pollInterval = "1s"
)

// contactView feeds the contact-form.html and contact-status.html fragments.
type contactView struct {
	FormID  string
	Draft   contact.Draft
	Status  contact.Status
	Errors  contact.IncompleteError
	Polling bool
	Every   string
}

type contactStatusResponse struct {
	Status  string        `json:"status"`
	Message string        `json:"message"`
	Draft   contact.Draft `json:"draft"`
}

func newContactView(id string, form *contact.Form, errs contact.IncompleteError) contactView {
	status := form.Status()
	return contactView{
		FormID:  id,
		Draft:   form.Draft(),
		Status:  status,
		Errors:  errs,
		Polling: status == contact.StatusSending,
		Every:   pollInterval,
	}
}

func (s *Server) newForm(sessionID string) (*contact.Form, error) {
	logger := s.logger.With().Str("session", sessionID[:8]).Logger()

	return contact.NewForm(s.provider,
		contact.WithGate(s.gate),
		contact.WithLogger(logger),
		contact.OnStatus(func(ctx context.Context, status contact.Status) {
			observability.ContactStatus().WithLabelValues(status.String()).Inc()
			if err := s.analytics.RecordContact(ctx, status.String()); err != nil {
				logger.Error().Err(err).Msg("failed to record contact outcome")
			}
		}),
		contact.OnSent(func() {
			logger.Info().Msg("contact form reset after delivery")
		}),
	)
}

// mountForm gives a page render its own empty, idle form.
func (s *Server) mountForm() (string, *contact.Form, error) {
	id, form, err := s.sessions.Mount()
	if err != nil {
		return "", nil, err
	}
	observability.ContactSessions().Set(float64(s.sessions.Len()))
	return id, form, nil
}

// requestForm resolves the form a fragment request belongs to. The id travels
// as a hidden input on posts and as a query parameter on polls.
func (s *Server) requestForm(c *gin.Context) (string, *contact.Form, bool) {
	id, ok := c.GetPostForm(formIDField)
	if !ok {
		id = c.Query(formIDField)
	}
	if uuid.Validate(id) != nil {
		c.String(http.StatusBadRequest, "missing contact form id")
		return "", nil, false
	}

	form, err := s.sessions.Get(id)
	if err != nil {
		s.contactUnavailable(c, err)
		return "", nil, false
	}
	return id, form, true
}

func (s *Server) registerContactRoutes(r *gin.Engine) {
	r.GET("/contact-form", s.contactForm)
	r.POST("/contact/draft", s.updateDraft)
	r.POST("/contact", s.submitContact)
	r.GET("/contact/status", s.contactStatus)
}

func (s *Server) contactForm(c *gin.Context) {
	id, form, err := s.mountForm()
	if err != nil {
		s.contactUnavailable(c, err)
		return
	}
	c.HTML(http.StatusOK, "contact-form.html", newContactView(id, form, nil))
}

// updateDraft applies one keystroke-level field change. The field is named
// by "field"; its text comes from the input of the same name, or "value".
func (s *Server) updateDraft(c *gin.Context) {
	field, err := contact.ParseField(c.PostForm("field"))
	if err != nil {
		c.String(http.StatusBadRequest, "unknown field")
		return
	}

	value, ok := c.GetPostForm(string(field))
	if !ok {
		value = c.PostForm("value")
	}

	_, form, ok := s.requestForm(c)
	if !ok {
		return
	}
	if err := form.Update(field, value); err != nil {
		c.String(http.StatusBadRequest, err.Error())
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) submitContact(c *gin.Context) {
	id, form, ok := s.requestForm(c)
	if !ok {
		return
	}

	// A full form post carries every field; apply what was sent first.
	for _, field := range contact.Fields {
		if value, ok := c.GetPostForm(string(field)); ok {
			if err := form.Update(field, value); err != nil {
				c.String(http.StatusBadRequest, err.Error())
				return
			}
		}
	}

	if _, err := form.Submit(c.Request.Context()); err != nil {
		var incomplete contact.IncompleteError
		if errors.As(err, &incomplete) {
			c.HTML(http.StatusUnprocessableEntity, "contact-form.html", newContactView(id, form, incomplete))
			return
		}
		s.contactUnavailable(c, err)
		return
	}

	c.HTML(http.StatusAccepted, "contact-form.html", newContactView(id, form, nil))
}

// contactStatus answers the poll. While sending, and after a failure, only
// the status line is swapped so unsent keystrokes in the inputs survive. A
// sent form is swapped whole, which clears the inputs.
func (s *Server) contactStatus(c *gin.Context) {
	id, form, ok := s.requestForm(c)
	if !ok {
		return
	}

	view := newContactView(id, form, nil)
	switch c.NegotiateFormat(binding.MIMEHTML, binding.MIMEJSON) {
	case binding.MIMEJSON:
		c.JSON(http.StatusOK, contactStatusResponse{
			Status:  view.Status.String(),
			Message: view.Status.Message(),
			Draft:   view.Draft,
		})
	default:
		if view.Status == contact.StatusSent {
			c.Header("HX-Retarget", "#contact-form")
			c.Header("HX-Reswap", "outerHTML")
			c.HTML(http.StatusOK, "contact-form.html", view)
			return
		}
		c.HTML(http.StatusOK, "contact-status.html", view)
	}
}

func (s *Server) contactUnavailable(c *gin.Context, err error) {
	s.logger.Error().Err(err).Str("request_id", observability.GetRequestID(c)).Msg("contact form unavailable")
	c.String(http.StatusInternalServerError, "Sorry, the contact form is unavailable right now. Please try again later.")
}

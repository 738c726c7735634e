package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/daffahardhan/portfolio_api/dto"
	"github.com/daffahardhan/portfolio_api/shared"
)

type ContactHandler struct {
	contactSvc ContactServiceInterface
}

func NewContactHandler(contactSvc ContactServiceInterface) *ContactHandler {
	return &ContactHandler{
		contactSvc: contactSvc,
	}
}

// @Summary Submit a contact message
// @Description Validate, sanitize and store a contact-form submission
// @Tags contact
// @Accept json
// @Produce json
// @Param contactRequest body dto.CreateContactRequest true "Contact form fields"
// @Success 201 {object} shared.Response{data=model.Contact}
// @Router /api/contact [post]
func (h *ContactHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateContactRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request body")
	}

	contact, err := h.contactSvc.CreateContact(req)
	if err != nil {
		return err
	}

	return shared.ResponseCreated(c, "Contact message sent successfully", contact)
}

// @Summary List contact messages
// @Description Return all submissions, newest first
// @Tags contact
// @Produce json
// @Success 200 {object} shared.Response{data=[]model.Contact}
// @Router /api/contact [get]
func (h *ContactHandler) List(c *fiber.Ctx) error {
	contacts, err := h.contactSvc.GetContacts()
	if err != nil {
		return err
	}

	return shared.ResponseOK(c, contacts)
}

// @Summary Count contact messages
// @Tags contact
// @Produce json
// @Success 200 {object} shared.Response{data=dto.ContactCountResponse}
// @Router /api/contact/count [get]
func (h *ContactHandler) Count(c *fiber.Ctx) error {
	count, err := h.contactSvc.CountContacts()
	if err != nil {
		return err
	}

	return shared.ResponseOK(c, dto.ContactCountResponse{Count: count})
}

// @Summary Get a contact message
// @Tags contact
// @Produce json
// @Param id path string true "Contact id"
// @Success 200 {object} shared.Response{data=model.Contact}
// @Router /api/contact/{id} [get]
func (h *ContactHandler) Get(c *fiber.Ctx) error {
	contact, err := h.contactSvc.GetContact(c.Params("id"))
	if err != nil {
		return err
	}

	return shared.ResponseOK(c, contact)
}

// @Summary Delete a contact message
// @Tags contact
// @Produce json
// @Param id path string true "Contact id"
// @Success 200 {object} shared.Response
// @Router /api/contact/{id} [delete]
func (h *ContactHandler) Delete(c *fiber.Ctx) error {
	if err := h.contactSvc.DeleteContact(c.Params("id")); err != nil {
		return err
	}

	return shared.ResponseSuccess(c, http.StatusOK, "Contact message deleted", nil)
}

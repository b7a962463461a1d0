package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/cadetforge/arena_api/shared"
)

type ReferenceHandler struct {
	referenceSvc ReferenceServiceInterface
}

func NewReferenceHandler(referenceSvc ReferenceServiceInterface) *ReferenceHandler {
	return &ReferenceHandler{referenceSvc: referenceSvc}
}

// @Summary List my references
// @Tags references
// @Produce json
// @Security Bearer
// @Success 200 {object} shared.Response{data=[]dto.ReferenceResponse}
// @Router /api/v1/references [get]
func (h *ReferenceHandler) GetReferences(c *fiber.Ctx) error {
	refs, err := h.referenceSvc.List(c.UserContext(), currentUser(c))
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", refs)
}

// @Summary Upload a reference document
// @Description Upload a PDF or DOC file
// @Tags references
// @Accept multipart/form-data
// @Produce json
// @Security Bearer
// @Param file formData file true "Document"
// @Param title formData string false "Title"
// @Success 201 {object} shared.Response{data=dto.ReferenceResponse}
// @Router /api/v1/references [post]
func (h *ReferenceHandler) UploadReference(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return shared.NewBadRequestError(err, "No file provided")
	}

	ref, err := h.referenceSvc.Upload(c.UserContext(), currentUser(c), c.FormValue("title"), file)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusCreated, "Reference uploaded", ref)
}

// @Summary Delete a reference
// @Tags references
// @Produce json
// @Security Bearer
// @Param id path string true "Reference ID"
// @Success 200 {object} shared.Response
// @Router /api/v1/references/{id} [delete]
func (h *ReferenceHandler) DeleteReference(c *fiber.Ctx) error {
	if err := h.referenceSvc.Delete(c.UserContext(), currentUser(c), c.Params("id")); err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Reference deleted", nil)
}

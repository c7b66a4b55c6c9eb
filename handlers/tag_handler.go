package handlers

import (
	"net/http"

	"blog-service/helper"
	"blog-service/models"
	"blog-service/services"

	"github.com/gin-gonic/gin"
)

type TagHandler struct {
	tagService services.TagService
	Helper     *helper.HTTPHelper
}

func NewTagHandler(tagService services.TagService, h *helper.HTTPHelper) *TagHandler {
	return &TagHandler{tagService: tagService, Helper: h}
}

func (h *TagHandler) GetTags(c *gin.Context) {
	tags, err := h.tagService.GetTags(c.Request.Context())
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	h.Helper.SendSuccess(c, http.StatusOK, tags)
}

func (h *TagHandler) CreateTag(c *gin.Context) {
	var req models.TagNameRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.Helper.SendBadRequest(c, "Invalid query parameters")
		return
	}

	tag, err := h.tagService.CreateTag(c.Request.Context(), req.TagName)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	h.Helper.SendSuccess(c, http.StatusOK, tag)
}

func (h *TagHandler) DeleteTag(c *gin.Context) {
	var req models.TagNameRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.Helper.SendBadRequest(c, "Invalid query parameters")
		return
	}

	if err := h.tagService.DeleteTag(c.Request.Context(), req.TagName); err != nil {
		h.Helper.SendError(c, err)
		return
	}

	h.Helper.SendNoContent(c)
}

package handlers

import (
	"net/http"
	"strconv"

	"blog-service/helper"
	"blog-service/middleware"
	"blog-service/models"
	"blog-service/services"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	postService services.PostService
	Helper      *helper.HTTPHelper
}

func NewPostHandler(postService services.PostService, h *helper.HTTPHelper) *PostHandler {
	return &PostHandler{postService: postService, Helper: h}
}

func (h *PostHandler) GetPosts(c *gin.Context) {
	var params models.PostListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		h.Helper.SendBadRequest(c, "Invalid query parameters")
		return
	}

	page, err := h.postService.ListPosts(c.Request.Context(), params)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	h.Helper.SendSuccess(c, http.StatusOK, page)
}

func (h *PostHandler) GetPost(c *gin.Context) {
	id, ok := h.postID(c)
	if !ok {
		return
	}

	post, err := h.postService.GetPost(c.Request.Context(), id)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	h.Helper.SendSuccess(c, http.StatusOK, post)
}

func (h *PostHandler) CreatePost(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	var req models.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBadRequest(c, "Invalid request body")
		return
	}

	post, err := h.postService.AddPost(c.Request.Context(), req, user)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	h.Helper.SendSuccess(c, http.StatusOK, post)
}

func (h *PostHandler) UpdatePost(c *gin.Context) {
	id, ok := h.postID(c)
	if !ok {
		return
	}
	user, _ := middleware.CurrentUser(c)

	var req models.UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBadRequest(c, "Invalid request body")
		return
	}

	post, err := h.postService.UpdatePost(c.Request.Context(), id, req, user)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	h.Helper.SendSuccess(c, http.StatusOK, post)
}

func (h *PostHandler) AddTag(c *gin.Context) {
	id, ok := h.postID(c)
	if !ok {
		return
	}

	var req models.PostTagRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.Helper.SendBadRequest(c, "Invalid query parameters")
		return
	}

	post, err := h.postService.AddTagToPost(c.Request.Context(), id, req.Tag)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	h.Helper.SendSuccess(c, http.StatusOK, post)
}

func (h *PostHandler) RemoveTag(c *gin.Context) {
	id, ok := h.postID(c)
	if !ok {
		return
	}

	var req models.PostTagRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.Helper.SendBadRequest(c, "Invalid query parameters")
		return
	}

	post, err := h.postService.RemoveTagFromPost(c.Request.Context(), id, req.Tag)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	h.Helper.SendSuccess(c, http.StatusOK, post)
}

func (h *PostHandler) DeletePost(c *gin.Context) {
	id, ok := h.postID(c)
	if !ok {
		return
	}
	user, _ := middleware.CurrentUser(c)

	if err := h.postService.DeletePost(c.Request.Context(), id, user); err != nil {
		h.Helper.SendError(c, err)
		return
	}

	h.Helper.SendNoContent(c)
}

func (h *PostHandler) postID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		h.Helper.SendBadRequest(c, "Invalid blog post id")
		return 0, false
	}
	return uint(id), true
}

package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/AlexMobiCraft/FREESPORT-B2B-sub002/internal/http/middleware"
	"github.com/AlexMobiCraft/FREESPORT-B2B-sub002/internal/http/render"
	"github.com/AlexMobiCraft/FREESPORT-B2B-sub002/internal/http/validation"
	"github.com/AlexMobiCraft/FREESPORT-B2B-sub002/internal/modules/blog"
	"github.com/AlexMobiCraft/FREESPORT-B2B-sub002/internal/shared/apperr"
	"github.com/AlexMobiCraft/FREESPORT-B2B-sub002/internal/storage"
)

// BlogHandler serves the blog pages plus the token-guarded admin create
// endpoint with its cover upload.
type BlogHandler struct {
	repo  *blog.Repo
	media storage.Storage
}

func NewBlogHandler(repo *blog.Repo, media storage.Storage) *BlogHandler {
	return &BlogHandler{repo: repo, media: media}
}

// List handles GET /blog.
func (h *BlogHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.Query("page"))
	if page < 1 {
		page = 1
	}
	const perPage = 10
	posts, err := h.repo.ListPublished(c.Request.Context(), perPage, (page-1)*perPage)
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	render.JSON(c, http.StatusOK, gin.H{"posts": posts, "page": page})
}

// Show handles GET /blog/:slug.
func (h *BlogHandler) Show(c *gin.Context) {
	post, err := h.repo.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			middleware.Fail(c, apperr.NotFoundErr("Post not found."))
			return
		}
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	render.JSON(c, http.StatusOK, post)
}

type createPostForm struct {
	Title   string `form:"title" validate:"required,min=3,max=255"`
	Body    string `form:"body" validate:"required"`
	Publish bool   `form:"publish"`
}

// Create handles POST /admin/blog (multipart, optional cover file).
func (h *BlogHandler) Create(c *gin.Context) {
	var in createPostForm
	if err := c.ShouldBind(&in); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Check the post fields.", nil))
		return
	}
	if fields := validation.Struct(in); fields != nil {
		middleware.Fail(c, apperr.InvalidErr("Check the post fields.", fields))
		return
	}

	coverURL := ""
	if fh, err := c.FormFile("cover"); err == nil {
		if fh.Size > storage.MaxUploadSize {
			middleware.Fail(c, apperr.InvalidErr("Cover image is too large.", nil))
			return
		}
		f, err := fh.Open()
		if err != nil {
			middleware.Fail(c, apperr.Wrap(err))
			return
		}
		defer f.Close()
		res, err := h.media.Put(c.Request.Context(), f, storage.PutInput{
			Filename:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Size:        fh.Size,
		})
		if err != nil {
			middleware.Fail(c, apperr.Wrap(err))
			return
		}
		coverURL = res.URL
	}

	var publishedAt *time.Time
	if in.Publish {
		now := time.Now()
		publishedAt = &now
	}
	post, err := h.repo.Create(c.Request.Context(), in.Title, in.Body, coverURL, publishedAt)
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	render.JSON(c, http.StatusCreated, post)
}

package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/AlexMobiCraft/FREESPORT-B2B-sub002/internal/http/middleware"
	"github.com/AlexMobiCraft/FREESPORT-B2B-sub002/internal/http/render"
	"github.com/AlexMobiCraft/FREESPORT-B2B-sub002/internal/http/validation"
	"github.com/AlexMobiCraft/FREESPORT-B2B-sub002/internal/modules/blog"
	"github.com/AlexMobiCraft/FREESPORT-B2B-sub002/internal/shared/apperr"
	"github.com/AlexMobiCraft/FREESPORT-B2B-sub002/internal/storage"
)

// PartnersHandler serves the partner pages and the admin create endpoint.
type PartnersHandler struct {
	repo  *blog.Repo
	media storage.Storage
}

func NewPartnersHandler(repo *blog.Repo, media storage.Storage) *PartnersHandler {
	return &PartnersHandler{repo: repo, media: media}
}

// List handles GET /partners.
func (h *PartnersHandler) List(c *gin.Context) {
	partners, err := h.repo.ListPartners(c.Request.Context())
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	render.JSON(c, http.StatusOK, gin.H{"partners": partners})
}

// Show handles GET /partners/:slug.
func (h *PartnersHandler) Show(c *gin.Context) {
	partner, err := h.repo.GetPartnerBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			middleware.Fail(c, apperr.NotFoundErr("Partner not found."))
			return
		}
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	render.JSON(c, http.StatusOK, partner)
}

type createPartnerForm struct {
	Name    string `form:"name" validate:"required,min=2,max=255"`
	Body    string `form:"body" validate:"required"`
	SiteURL string `form:"site_url" validate:"omitempty,url"`
}

// Create handles POST /admin/partners (multipart, optional logo file).
func (h *PartnersHandler) Create(c *gin.Context) {
	var in createPartnerForm
	if err := c.ShouldBind(&in); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Check the partner fields.", nil))
		return
	}
	if fields := validation.Struct(in); fields != nil {
		middleware.Fail(c, apperr.InvalidErr("Check the partner fields.", fields))
		return
	}

	logoURL := ""
	if fh, err := c.FormFile("logo"); err == nil {
		if fh.Size > storage.MaxUploadSize {
			middleware.Fail(c, apperr.InvalidErr("Logo image is too large.", nil))
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
		logoURL = res.URL
	}

	partner, err := h.repo.CreatePartner(c.Request.Context(), in.Name, in.Body, logoURL, in.SiteURL)
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	render.JSON(c, http.StatusCreated, partner)
}

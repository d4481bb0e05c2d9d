package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/ozanatli/microsite-backend/internal/dto"
	"github.com/ozanatli/microsite-backend/internal/editor"
	"github.com/ozanatli/microsite-backend/internal/identity"
	"github.com/ozanatli/microsite-backend/internal/middleware"
	"github.com/ozanatli/microsite-backend/internal/models"
	"github.com/ozanatli/microsite-backend/internal/services"
	"github.com/ozanatli/microsite-backend/internal/store"
	"github.com/ozanatli/microsite-backend/internal/uploader"
)

// DashboardSessionsHandler exposes the staged editing model over HTTP. One
// session per (user, section); drafts live server-side in the registry and
// hit the store only on an explicit save.
type DashboardSessionsHandler struct {
	tenants  *services.TenantService
	registry *editor.Registry
	uploads  uploader.Client
}

func NewDashboardSessionsHandler(tenants *services.TenantService, registry *editor.Registry, uploads uploader.Client) *DashboardSessionsHandler {
	return &DashboardSessionsHandler{tenants: tenants, registry: registry, uploads: uploads}
}

// profileDraft is the editable slice of the business identity scalars. The
// slug and status are deliberately absent; neither is client-editable.
type profileDraft struct {
	BusinessName string `json:"business_name"`
	LogoURL      string `json:"logo_url,omitempty"`
}

// sessionOps adapts one typed session to the untyped HTTP surface. The
// closures are bound over the concrete session at open time so the handlers
// never type-switch. list is nil for scalar sections; appendGallery is set
// only for the gallery section.
type sessionOps struct {
	state    func() dto.SessionStateResponse
	setDraft func(body []byte) error
	save     func(ctx context.Context) (bool, error)
	discard  func()
	dirty    func() bool

	list          *listOps
	appendGallery func(items []models.GalleryItem) error
}

type listOps struct {
	add           func(body []byte) error
	beginEdit     func(id string) error
	updateTemp    func(body []byte) error
	commitEdit    func() error
	cancelEdit    func() error
	requestDelete func(id string) error
	confirmDelete func(id string) error
}

// Open loads the section's current value from the store and starts a fresh
// session over it, replacing any previous session for the same section.
func (h *DashboardSessionsHandler) Open(c *fiber.Ctx) error {
	uid, ok := identityUserID(c)
	if !ok {
		return nil
	}
	section := c.Params("section")
	tenantID := middleware.TenantID(c)

	tenant, err := h.tenants.Get(c.Context(), tenantID)
	if err != nil {
		return respondStoreError(c, err)
	}

	persist := func(ctx context.Context, p store.TenantPatch) error {
		return h.tenants.Patch(ctx, tenantID, p)
	}

	var ops *sessionOps
	switch section {
	case store.SectionProfile:
		ops = bindScalar(section,
			profileDraft{BusinessName: tenant.BusinessName, LogoURL: tenant.LogoURL},
			func(v profileDraft) store.TenantPatch {
				return store.ProfilePatch{BusinessName: v.BusinessName, LogoURL: v.LogoURL}
			}, persist)
	case store.SectionContact:
		ops = bindScalar(section, tenant.Contact,
			func(v models.Contact) store.TenantPatch { return store.ContactPatch{Contact: v} }, persist)
	case store.SectionSEO:
		ops = bindScalar(section, tenant.SEO,
			func(v models.SEO) store.TenantPatch { return store.SEOPatch{SEO: v} }, persist)
	case store.SectionContent:
		ops = bindScalar(section, tenant.Content,
			func(v models.WebsiteContent) store.TenantPatch { return store.ContentPatch{Content: v} }, persist)
	case store.SectionOffers:
		ops = bindScalar(section, tenant.Offers,
			func(v models.Offers) store.TenantPatch { return store.OffersPatch{Offers: v} }, persist)
	case store.SectionServices:
		ops, _ = bindList(section, []models.Service(tenant.Services), newServiceItem,
			func(items []models.Service) store.TenantPatch {
				return store.ServicesPatch{Services: models.ServiceList(items)}
			}, persist)
	case store.SectionGallery:
		ops = bindGallery(section, tenant.Gallery, persist)
	default:
		return badRequest(c, "Unknown section")
	}

	h.registry.Put(uid, section, ops)
	return c.Status(fiber.StatusCreated).JSON(ops.state())
}

func (h *DashboardSessionsHandler) State(c *fiber.Ctx) error {
	ops, resp := h.lookup(c)
	if ops == nil {
		return resp
	}
	return c.JSON(ops.state())
}

// SetDraft replaces the scalar draft with the request body. Collection drafts
// change only through item commands.
func (h *DashboardSessionsHandler) SetDraft(c *fiber.Ctx) error {
	ops, resp := h.lookup(c)
	if ops == nil {
		return resp
	}
	if ops.setDraft == nil {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Error: true, Code: "collection_section",
			Message: "Collection sections change through item operations",
		})
	}
	if err := ops.setDraft(c.Body()); err != nil {
		return respondEditorError(c, err)
	}
	return c.JSON(ops.state())
}

func (h *DashboardSessionsHandler) Save(c *fiber.Ctx) error {
	ops, resp := h.lookup(c)
	if ops == nil {
		return resp
	}
	saved, err := ops.save(c.Context())
	if err != nil {
		return respondEditorError(c, err)
	}
	return c.JSON(dto.SaveResponse{Saved: saved, Dirty: ops.dirty()})
}

func (h *DashboardSessionsHandler) Discard(c *fiber.Ctx) error {
	ops, resp := h.lookup(c)
	if ops == nil {
		return resp
	}
	ops.discard()
	return c.JSON(ops.state())
}

// Close drops the session. Unsaved draft changes are lost; that is the point
// of closing without saving.
func (h *DashboardSessionsHandler) Close(c *fiber.Ctx) error {
	uid, ok := identityUserID(c)
	if !ok {
		return nil
	}
	h.registry.Delete(uid, c.Params("section"))
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *DashboardSessionsHandler) AddItem(c *fiber.Ctx) error {
	ops, resp := h.listOps(c)
	if ops == nil {
		return resp
	}
	if err := ops.list.add(c.Body()); err != nil {
		return respondEditorError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(ops.state())
}

func (h *DashboardSessionsHandler) BeginEdit(c *fiber.Ctx) error {
	ops, resp := h.listOps(c)
	if ops == nil {
		return resp
	}
	if err := ops.list.beginEdit(c.Params("itemId")); err != nil {
		return respondEditorError(c, err)
	}
	return c.JSON(ops.state())
}

func (h *DashboardSessionsHandler) UpdateTemp(c *fiber.Ctx) error {
	ops, resp := h.listOps(c)
	if ops == nil {
		return resp
	}
	if err := ops.list.updateTemp(c.Body()); err != nil {
		return respondEditorError(c, err)
	}
	return c.JSON(ops.state())
}

func (h *DashboardSessionsHandler) CommitEdit(c *fiber.Ctx) error {
	ops, resp := h.listOps(c)
	if ops == nil {
		return resp
	}
	if err := ops.list.commitEdit(); err != nil {
		return respondEditorError(c, err)
	}
	return c.JSON(ops.state())
}

func (h *DashboardSessionsHandler) CancelEdit(c *fiber.Ctx) error {
	ops, resp := h.listOps(c)
	if ops == nil {
		return resp
	}
	if err := ops.list.cancelEdit(); err != nil {
		return respondEditorError(c, err)
	}
	return c.JSON(ops.state())
}

func (h *DashboardSessionsHandler) RequestDelete(c *fiber.Ctx) error {
	ops, resp := h.listOps(c)
	if ops == nil {
		return resp
	}
	if err := ops.list.requestDelete(c.Params("itemId")); err != nil {
		return respondEditorError(c, err)
	}
	return c.JSON(ops.state())
}

func (h *DashboardSessionsHandler) ConfirmDelete(c *fiber.Ctx) error {
	ops, resp := h.listOps(c)
	if ops == nil {
		return resp
	}
	if err := ops.list.confirmDelete(c.Params("itemId")); err != nil {
		return respondEditorError(c, err)
	}
	return c.JSON(ops.state())
}

// BulkUpload pushes every file in the multipart form to the image host and
// appends the resulting items to the open gallery draft. Uploads happen
// immediately; the gallery itself still waits for the session save.
func (h *DashboardSessionsHandler) BulkUpload(c *fiber.Ctx) error {
	uid, ok := identityUserID(c)
	if !ok {
		return nil
	}
	v, ok := h.registry.Get(uid, store.SectionGallery)
	if !ok {
		return respondNoSession(c)
	}
	ops, ok := v.(*sessionOps)
	if !ok || ops.appendGallery == nil {
		return respondNoSession(c)
	}

	form, err := c.MultipartForm()
	if err != nil {
		return badRequest(c, "Invalid multipart form")
	}
	fileHeaders := form.File["files"]
	if len(fileHeaders) == 0 {
		return badRequest(c, "No files provided")
	}

	category := c.FormValue("category")
	if category == "" {
		category = models.DefaultGalleryCategory
	}

	files := make([]services.UploadFile, 0, len(fileHeaders))
	for _, fh := range fileHeaders {
		f, err := fh.Open()
		if err != nil {
			return badRequest(c, "Failed to read uploaded file")
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return badRequest(c, "Failed to read uploaded file")
		}
		files = append(files, services.UploadFile{Name: fh.Filename, Data: data})
	}

	urls, err := services.UploadAll(c.Context(), h.uploads, files)
	if err != nil {
		if errors.Is(err, uploader.ErrNotConfigured) {
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Error: true, Code: "uploads_unavailable", Message: "Image uploads are not configured",
			})
		}
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{
			Error: true, Code: "upload_failed", Message: "One or more uploads failed; nothing was added",
		})
	}

	now := time.Now().UTC()
	items := make([]models.GalleryItem, len(urls))
	for i, url := range urls {
		items[i] = models.GalleryItem{URL: url, Category: category, CreatedAt: &now}
	}
	if err := ops.appendGallery(items); err != nil {
		return respondEditorError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(dto.BulkUploadResponse{
		Uploaded: len(items),
		Items:    models.GalleryList(items),
		Dirty:    ops.dirty(),
	})
}

// lookup resolves the caller's session for the section in the path. A nil ops
// means the second return value already carries the error response.
func (h *DashboardSessionsHandler) lookup(c *fiber.Ctx) (*sessionOps, error) {
	uid, ok := identityUserID(c)
	if !ok {
		return nil, nil
	}
	v, ok := h.registry.Get(uid, c.Params("section"))
	if !ok {
		return nil, respondNoSession(c)
	}
	ops, ok := v.(*sessionOps)
	if !ok {
		return nil, respondNoSession(c)
	}
	return ops, nil
}

func (h *DashboardSessionsHandler) listOps(c *fiber.Ctx) (*sessionOps, error) {
	ops, resp := h.lookup(c)
	if ops == nil {
		return nil, resp
	}
	if ops.list == nil {
		return nil, c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Error: true, Code: "scalar_section",
			Message: "Item operations apply to collection sections only",
		})
	}
	return ops, nil
}

func bindScalar[T any](section string, initial T, makePatch func(T) store.TenantPatch, persist func(context.Context, store.TenantPatch) error) *sessionOps {
	sess := editor.NewSession[T]()
	sess.Load(initial)
	return &sessionOps{
		state: func() dto.SessionStateResponse { return scalarState(section, sess) },
		setDraft: func(body []byte) error {
			var v T
			if err := json.Unmarshal(body, &v); err != nil {
				return fmt.Errorf("%w: invalid %s payload", services.ErrValidation, section)
			}
			return sess.Mutate(func(d *T) { *d = v })
		},
		save: func(ctx context.Context) (bool, error) {
			return sess.Save(ctx, func(ctx context.Context, v T) error {
				return persist(ctx, makePatch(v))
			})
		},
		discard: sess.Discard,
		dirty:   sess.IsDirty,
	}
}

func bindList[I editor.Identifiable](section string, initial []I, newItem func(body []byte) (I, error), makePatch func([]I) store.TenantPatch, persist func(context.Context, store.TenantPatch) error) (*sessionOps, *editor.ListSession[I]) {
	sess := editor.NewListSession[I]()
	sess.Load(initial)
	ops := &sessionOps{
		state: func() dto.SessionStateResponse { return listState(section, sess) },
		save: func(ctx context.Context) (bool, error) {
			return sess.Save(ctx, func(ctx context.Context, items []I) error {
				return persist(ctx, makePatch(items))
			})
		},
		discard: sess.Discard,
		dirty:   sess.IsDirty,
		list: &listOps{
			add: func(body []byte) error {
				item, err := newItem(body)
				if err != nil {
					return err
				}
				return sess.AddItem(item)
			},
			beginEdit: sess.BeginEdit,
			updateTemp: func(body []byte) error {
				cur, ok := sess.Temp()
				if !ok {
					return editor.ErrNoEditInProgress
				}
				if err := json.Unmarshal(body, &cur); err != nil {
					return fmt.Errorf("%w: invalid %s item payload", services.ErrValidation, section)
				}
				return sess.UpdateTemp(func(d *I) { *d = cur })
			},
			commitEdit:    sess.CommitEdit,
			cancelEdit:    sess.CancelEdit,
			requestDelete: sess.RequestDelete,
			confirmDelete: sess.ConfirmDelete,
		},
	}
	return ops, sess
}

func bindGallery(section string, gallery models.GalleryList, persist func(context.Context, store.TenantPatch) error) *sessionOps {
	ops, sess := bindList(section, []models.GalleryItem(gallery), newGalleryItem,
		func(items []models.GalleryItem) store.TenantPatch {
			return store.GalleryPatch{Gallery: models.GalleryList(items)}
		}, persist)
	ops.appendGallery = sess.AppendBatch
	return ops
}

// newServiceItem builds a fresh service for AddItem. The body may prefill
// fields; the id is always server-generated.
func newServiceItem(body []byte) (models.Service, error) {
	svc := models.NewService()
	if len(body) > 0 {
		id := svc.ID
		if err := json.Unmarshal(body, &svc); err != nil {
			return svc, fmt.Errorf("%w: invalid service payload", services.ErrValidation)
		}
		svc.ID = id
	}
	return svc, nil
}

func newGalleryItem(body []byte) (models.GalleryItem, error) {
	var item models.GalleryItem
	if err := json.Unmarshal(body, &item); err != nil {
		return item, fmt.Errorf("%w: invalid gallery item payload", services.ErrValidation)
	}
	if item.URL == "" {
		return item, fmt.Errorf("%w: gallery item url is required", services.ErrValidation)
	}
	return item, nil
}

func scalarState[T any](section string, sess *editor.Session[T]) dto.SessionStateResponse {
	return dto.SessionStateResponse{
		Section:  section,
		Draft:    sess.Draft(),
		Baseline: sess.Baseline(),
		Dirty:    sess.IsDirty(),
		Saving:   sess.Saving(),
	}
}

func listState[I editor.Identifiable](section string, sess *editor.ListSession[I]) dto.SessionStateResponse {
	st := dto.SessionStateResponse{
		Section:   section,
		Draft:     sess.Draft(),
		Baseline:  sess.Baseline(),
		Dirty:     sess.IsDirty(),
		Saving:    sess.Saving(),
		EditingID: sess.EditingID(),
	}
	if temp, ok := sess.Temp(); ok {
		st.TempItem = temp
	}
	return st
}

func respondNoSession(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
		Error: true, Code: "no_session", Message: "No editing session is open for this section",
	})
}

func respondEditorError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, editor.ErrEditInProgress):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Error: true, Code: "edit_in_progress",
			Message: "Finish or cancel the current item edit first",
		})
	case errors.Is(err, editor.ErrNoEditInProgress):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Error: true, Code: "no_edit_in_progress", Message: "No item is being edited",
		})
	case errors.Is(err, editor.ErrNoDeleteRequest):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Error: true, Code: "no_delete_request", Message: "Request the deletion first",
		})
	case errors.Is(err, editor.ErrItemNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Code: "item_not_found", Message: "Item not found in draft",
		})
	case errors.Is(err, editor.ErrNotLoaded):
		return respondNoSession(c)
	default:
		return respondStoreError(c, err)
	}
}

// identityUserID wraps the claim extraction with the HTTP response so every
// session handler shares one failure path. A false return means the 401 has
// already been written.
func identityUserID(c *fiber.Ctx) (uuid.UUID, bool) {
	uid, err := identity.UserID(c)
	if err != nil {
		_ = c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
		return uuid.Nil, false
	}
	return uid, true
}

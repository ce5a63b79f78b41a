package handlers

import (
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"

	"github.com/lancechain/registry_be/internal/models"
	"github.com/lancechain/registry_be/internal/realtime"
	"github.com/lancechain/registry_be/internal/registry"
	"github.com/lancechain/registry_be/internal/services/treasury"
	"github.com/lancechain/registry_be/internal/store"
)

type ProjectHandler struct {
	Registry *registry.Registry
	Store    *store.Store
	Treasury *treasury.Service
	Hub      *realtime.Hub
	RDB      *redis.Client
}

func NewProjectHandler(reg *registry.Registry, st *store.Store, tr *treasury.Service, hub *realtime.Hub, rdb *redis.Client) *ProjectHandler {
	return &ProjectHandler{Registry: reg, Store: st, Treasury: tr, Hub: hub, RDB: rdb}
}

type CreateProjectReq struct {
	Title            string   `json:"title"`
	Description      string   `json:"description"`
	RequiredSkills   []string `json:"required_skills"`
	DurationDays     uint64   `json:"duration_days"`
	Amount           uint64   `json:"amount"`
	ProposalDeadline int64    `json:"proposal_deadline"`
	Fee              uint64   `json:"fee"`
}

type UpdateProjectReq struct {
	Description string `json:"description"`
	Open        *bool  `json:"open"`
}

type SubmitProposalReq struct {
	Pitch        string `json:"pitch"`
	Amount       uint64 `json:"amount"`
	DurationDays uint64 `json:"duration_days"`
	Fee          uint64 `json:"fee"`
}

// Create registers a new project; employers only.
func (h *ProjectHandler) Create(c *fiber.Ctx) error {
	caller, ok := callerAddr(c)
	if !ok {
		return fiber.ErrUnauthorized
	}

	var req CreateProjectReq
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid body")
	}

	call := registry.Call{Caller: caller, Payment: req.Fee, Now: time.Now().Unix()}
	ev, err := h.Registry.RegisterProject(call, registry.RegisterProjectInput{
		Title:            req.Title,
		Description:      req.Description,
		RequiredSkills:   req.RequiredSkills,
		DurationDays:     req.DurationDays,
		Amount:           req.Amount,
		ProposalDeadline: req.ProposalDeadline,
	})
	if err != nil {
		return fail(c, err)
	}

	h.persistProject(ev.ID)
	if err := h.Treasury.RecordFee(caller, models.FeeProject, req.Fee, fmt.Sprintf("%d", ev.ID)); err != nil {
		log.Printf("Error recording project fee for %s: %v", caller, err)
	}
	realtime.PublishEvent(h.RDB, h.Hub, "project_registered", ev)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    fiber.Map{"id": ev.ID},
	})
}

// Update overwrites a project's description and open flag; owner only.
func (h *ProjectHandler) Update(c *fiber.Ctx) error {
	caller, ok := callerAddr(c)
	if !ok {
		return fiber.ErrUnauthorized
	}
	id, err := parseProjectID(c)
	if err != nil {
		return badRequest(c, "invalid project id")
	}

	var req UpdateProjectReq
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	if req.Open == nil {
		return badRequest(c, "open flag is required")
	}

	call := registry.Call{Caller: caller, Now: time.Now().Unix()}
	if err := h.Registry.UpdateProject(call, id, req.Description, *req.Open); err != nil {
		return fail(c, err)
	}

	h.persistProject(id)

	return c.JSON(fiber.Map{"success": true})
}

// Get is public: anyone may read a project; proposals stay gated.
func (h *ProjectHandler) Get(c *fiber.Ctx) error {
	id, err := parseProjectID(c)
	if err != nil {
		return badRequest(c, "invalid project id")
	}

	view, err := h.Registry.Project(id)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{"success": true, "data": view})
}

// List is public and returns the full append-only sequence.
func (h *ProjectHandler) List(c *fiber.Ctx) error {
	views := h.Registry.Projects()
	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"count":    len(views),
			"projects": views,
		},
	})
}

// SubmitProposal appends a proposal; freelancers only, open projects only,
// before the deadline only.
func (h *ProjectHandler) SubmitProposal(c *fiber.Ctx) error {
	caller, ok := callerAddr(c)
	if !ok {
		return fiber.ErrUnauthorized
	}
	id, err := parseProjectID(c)
	if err != nil {
		return badRequest(c, "invalid project id")
	}

	var req SubmitProposalReq
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid body")
	}

	call := registry.Call{Caller: caller, Payment: req.Fee, Now: time.Now().Unix()}
	ev, err := h.Registry.SubmitProposal(call, id, registry.SubmitProposalInput{
		Pitch:        req.Pitch,
		Amount:       req.Amount,
		DurationDays: req.DurationDays,
	})
	if err != nil {
		return fail(c, err)
	}

	h.persistProject(id)
	if err := h.Treasury.RecordFee(caller, models.FeeProposal, req.Fee, fmt.Sprintf("%d", id)); err != nil {
		log.Printf("Error recording proposal fee for %s: %v", caller, err)
	}
	realtime.PublishEvent(h.RDB, h.Hub, "proposal_submitted", ev)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"project_id": ev.ProjectID,
			"freelancer": ev.Freelancer,
		},
	})
}

// GetProposal returns one proposal; the project's employer only.
func (h *ProjectHandler) GetProposal(c *fiber.Ctx) error {
	caller, ok := callerAddr(c)
	if !ok {
		return fiber.ErrUnauthorized
	}
	id, err := parseProjectID(c)
	if err != nil {
		return badRequest(c, "invalid project id")
	}
	index, err := strconv.Atoi(c.Params("index"))
	if err != nil {
		return badRequest(c, "invalid proposal index")
	}

	call := registry.Call{Caller: caller, Now: time.Now().Unix()}
	proposal, err := h.Registry.Proposal(call, id, index)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{"success": true, "data": proposal})
}

func (h *ProjectHandler) persistProject(id uint64) {
	if rec, ok := h.Registry.ProjectRecord(id); ok {
		if err := h.Store.SaveProject(rec); err != nil {
			log.Printf("Error persisting project %d: %v", id, err)
		}
	}
}

func parseProjectID(c *fiber.Ctx) (uint64, error) {
	return strconv.ParseUint(c.Params("id"), 10, 64)
}

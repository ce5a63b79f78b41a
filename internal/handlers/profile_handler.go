package handlers

import (
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
	"github.com/lancechain/registry_be/internal/utils"
)

type ProfileHandler struct {
	Registry  *registry.Registry
	Store     *store.Store
	Treasury  *treasury.Service
	Hub       *realtime.Hub
	RDB       *redis.Client
	JWTSecret string
	Expires   int
}

func NewProfileHandler(reg *registry.Registry, st *store.Store, tr *treasury.Service, hub *realtime.Hub, rdb *redis.Client, jwtSecret string, expiresMin int) *ProfileHandler {
	return &ProfileHandler{
		Registry:  reg,
		Store:     st,
		Treasury:  tr,
		Hub:       hub,
		RDB:       rdb,
		JWTSecret: jwtSecret,
		Expires:   expiresMin,
	}
}

type RegisterProfileReq struct {
	Address     string                 `json:"address"`
	Name        string                 `json:"name"`
	Photo       string                 `json:"photo"`
	Role        string                 `json:"role"`
	Skills      []string               `json:"skills"`
	Education   string                 `json:"education"`
	Experiences []models.Experience    `json:"experiences"`
	Portfolio   []models.PortfolioItem `json:"portfolio"`
	SignedAt    int64                  `json:"signed_at"`
	Signature   string                 `json:"signature"`
	Fee         uint64                 `json:"fee"`
}

type UpdateProfileReq struct {
	Name        string                 `json:"name"`
	Photo       string                 `json:"photo"`
	Skills      []string               `json:"skills"`
	Education   string                 `json:"education"`
	Experiences []models.Experience    `json:"experiences"`
	Portfolio   []models.PortfolioItem `json:"portfolio"`
}

// Register creates a profile from a wallet-signed self-attestation and
// issues the session token used for every subsequent call.
func (h *ProfileHandler) Register(c *fiber.Ctx) error {
	var req RegisterProfileReq
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid body")
	}

	call := registry.Call{
		Caller:  req.Address,
		Payment: req.Fee,
		Now:     time.Now().Unix(),
	}
	ev, err := h.Registry.RegisterProfile(call, registry.RegisterProfileInput{
		Name:        req.Name,
		Photo:       req.Photo,
		Role:        models.Role(req.Role),
		Skills:      req.Skills,
		Education:   req.Education,
		Experiences: req.Experiences,
		Portfolio:   req.Portfolio,
		SignedAt:    req.SignedAt,
		Signature:   req.Signature,
	})
	if err != nil {
		return fail(c, err)
	}

	h.persistProfile(ev.Address)
	if err := h.Treasury.RecordFee(ev.Address, models.FeeRegistration, req.Fee, ev.Address); err != nil {
		log.Printf("Error recording registration fee for %s: %v", ev.Address, err)
	}
	realtime.PublishEvent(h.RDB, h.Hub, "profile_registered", ev)

	token, err := utils.SignJWT(h.JWTSecret, ev.Address, string(ev.Role), h.Expires)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "failed to issue token",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"address": ev.Address,
			"role":    ev.Role,
			"token":   token,
		},
	})
}

// Update overwrites the caller's mutable profile fields.
func (h *ProfileHandler) Update(c *fiber.Ctx) error {
	caller, ok := callerAddr(c)
	if !ok {
		return fiber.ErrUnauthorized
	}

	var req UpdateProfileReq
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid body")
	}

	call := registry.Call{Caller: caller, Now: time.Now().Unix()}
	if err := h.Registry.UpdateProfile(call, registry.UpdateProfileInput{
		Name:        req.Name,
		Photo:       req.Photo,
		Skills:      req.Skills,
		Education:   req.Education,
		Experiences: req.Experiences,
		Portfolio:   req.Portfolio,
	}); err != nil {
		return fail(c, err)
	}

	h.persistProfile(caller)

	return c.JSON(fiber.Map{"success": true})
}

// GetProfile is the base read: self or any employer.
func (h *ProfileHandler) GetProfile(c *fiber.Ctx) error {
	caller, ok := callerAddr(c)
	if !ok {
		return fiber.ErrUnauthorized
	}

	call := registry.Call{Caller: caller, Now: time.Now().Unix()}
	view, err := h.Registry.Profile(call, c.Params("address"))
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{"success": true, "data": view})
}

func (h *ProfileHandler) GetExperience(c *fiber.Ctx) error {
	caller, ok := callerAddr(c)
	if !ok {
		return fiber.ErrUnauthorized
	}
	index, err := strconv.Atoi(c.Params("index"))
	if err != nil {
		return badRequest(c, "invalid experience index")
	}

	call := registry.Call{Caller: caller, Now: time.Now().Unix()}
	exp, err := h.Registry.Experience(call, c.Params("address"), index)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{"success": true, "data": exp})
}

func (h *ProfileHandler) GetPortfolioItem(c *fiber.Ctx) error {
	caller, ok := callerAddr(c)
	if !ok {
		return fiber.ErrUnauthorized
	}
	index, err := strconv.Atoi(c.Params("index"))
	if err != nil {
		return badRequest(c, "invalid portfolio index")
	}

	call := registry.Call{Caller: caller, Now: time.Now().Unix()}
	item, err := h.Registry.PortfolioItem(call, c.Params("address"), index)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{"success": true, "data": item})
}

func (h *ProfileHandler) persistProfile(address string) {
	if rec, ok := h.Registry.ProfileRecord(address); ok {
		if err := h.Store.SaveProfile(rec); err != nil {
			log.Printf("Error persisting profile %s: %v", address, err)
		}
	}
}

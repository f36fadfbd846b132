package handlers

import (
	"log"
	"strconv"
	"time"

	"heirloom/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// DiaryHandler handles the diary pages. All of its routes sit behind the
// session guard, so c.Locals carries the authenticated identity.
type DiaryHandler struct {
	diaryService *services.DiaryService
	validate     *validator.Validate
}

// NewDiaryHandler creates a new DiaryHandler.
func NewDiaryHandler(diaryService *services.DiaryService) *DiaryHandler {
	return &DiaryHandler{
		diaryService: diaryService,
		validate:     validator.New(),
	}
}

// RegisterRoutes registers the diary routes; the caller mounts them behind
// the auth guard.
func (h *DiaryHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/diary", h.HandleDiaryView)
	router.Post("/diary", h.HandleCreateEntry)
	router.Get("/scratch/:id", h.HandleScratch)
}

// selectedDate resolves the optional ?date= parameter, defaulting to the
// current calendar date when absent or malformed.
func selectedDate(c *fiber.Ctx) time.Time {
	if raw := c.Query("date"); raw != "" {
		if parsed, err := time.Parse(services.DateLayout, raw); err == nil {
			return parsed
		}
	}
	return time.Now()
}

// HandleDiaryView renders the diary page for the selected date, or a whole
// month when ?month= is given instead.
func (h *DiaryHandler) HandleDiaryView(c *fiber.Ctx) error {
	if raw := c.Query("month"); raw != "" {
		if m, err := strconv.Atoi(raw); err == nil && m >= 1 && m <= 12 {
			return h.renderMonth(c, time.Month(m))
		}
	}

	view, err := h.diaryService.View(selectedDate(c))
	if err != nil {
		log.Printf("Error loading diary view: %v", err)
		return c.SendStatus(fiber.StatusInternalServerError)
	}

	data := fiber.Map{
		"Username":     c.Locals("username"),
		"SelectedDate": view.SelectedDate.Format(services.DateLayout),
		"Entries":      view.Entries,
	}
	if view.PreviousDate != nil {
		data["PreviousDate"] = view.PreviousDate.Format(services.DateLayout)
	}
	if view.NextDate != nil {
		data["NextDate"] = view.NextDate.Format(services.DateLayout)
	}
	return c.Render("diary", data)
}

func (h *DiaryHandler) renderMonth(c *fiber.Ctx, month time.Month) error {
	entries, err := h.diaryService.MonthView(month)
	if err != nil {
		log.Printf("Error loading month view: %v", err)
		return c.SendStatus(fiber.StatusInternalServerError)
	}
	return c.Render("month", fiber.Map{
		"Username": c.Locals("username"),
		"Month":    month.String(),
		"Entries":  entries,
	})
}

// EntryForm represents the new-entry form fields.
type EntryForm struct {
	Content string `form:"content" validate:"required"`
}

// HandleCreateEntry inserts a new entry for the selected date and redirects
// back to that date's view, so the date parameter survives the round-trip.
func (h *DiaryHandler) HandleCreateEntry(c *fiber.Ctx) error {
	date := services.NormalizeDate(selectedDate(c))
	target := "/diary?date=" + date.Format(services.DateLayout)

	var form EntryForm
	if err := c.BodyParser(&form); err != nil {
		log.Printf("Error parsing entry form: %v", err)
		return c.Redirect(target, fiber.StatusFound)
	}
	if err := h.validate.Struct(form); err != nil {
		return c.Redirect(target, fiber.StatusFound)
	}

	userID, _ := c.Locals("user_id").(string)
	if _, err := h.diaryService.CreateEntry(userID, form.Content, date); err != nil {
		log.Printf("Error creating entry: %v", err)
	}
	return c.Redirect(target, fiber.StatusFound)
}

// HandleScratch applies the one-way scratch and redirects to the entry's own
// date view. A nonexistent entry is a 404; a non-owner scratch is silently
// absorbed and looks exactly like success to the caller.
func (h *DiaryHandler) HandleScratch(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return c.SendStatus(fiber.StatusNotFound)
	}
	userID, _ := c.Locals("user_id").(string)

	outcome, entryDate, err := h.diaryService.ScratchEntry(uint(id), userID)
	if err != nil {
		log.Printf("Error scratching entry %d: %v", id, err)
		return c.SendStatus(fiber.StatusInternalServerError)
	}
	if outcome == services.ScratchNotFound {
		return c.SendStatus(fiber.StatusNotFound)
	}
	if outcome == services.ScratchForbidden {
		log.Printf("Scratch of entry %d denied, not owned by user %s", id, userID)
	}

	return c.Redirect("/diary?date="+entryDate.Format(services.DateLayout), fiber.StatusFound)
}

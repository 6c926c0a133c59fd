package handlers

import (
	"errors"
	"log"
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/traininghub/quiz_platform/editor"
	"github.com/traininghub/quiz_platform/middleware"
	"github.com/traininghub/quiz_platform/models"
	"github.com/traininghub/quiz_platform/storage"
)

// Each authenticated admin gets one editing session holding its own
// in-memory catalog copy. Two sessions editing at once do not see each
// other's changes; whoever saves last wins at the storage layer.
var (
	sessionsMu sync.Mutex
	sessions   = map[string]*editor.Session{}
)

func sessionFor(c *fiber.Ctx) *editor.Session {
	sessionsMu.Lock()
	defer sessionsMu.Unlock()
	return sessions[middleware.UserID(c)]
}

func requireSession(c *fiber.Ctx) (*editor.Session, error) {
	s := sessionFor(c)
	if s == nil {
		return nil, c.Status(fiber.StatusConflict).JSON(fiber.Map{"success": false, "message": "No editor session. Open one first."})
	}
	return s, nil
}

// OpenEditorSession loads the catalog into a fresh session, replacing
// any previous one for the same admin.
func OpenEditorSession(c *fiber.Ctx) error {
	userID := middleware.UserID(c)
	session, err := editor.NewSession(storage.Catalog, storage.ChangeLog, userID, func() {
		log.Printf("Editor session %s has unsaved changes", userID)
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to load catalog"})
	}

	sessionsMu.Lock()
	sessions[userID] = session
	sessionsMu.Unlock()

	state, _ := session.Status()
	return c.JSON(fiber.Map{
		"success": true,
		"catalog": session.Catalog(),
		"state":   state,
	})
}

// CloseEditorSession drops the in-memory session. Unsaved edits are
// refused unless ?discard=true is set.
func CloseEditorSession(c *fiber.Ctx) error {
	session := sessionFor(c)
	if session == nil {
		return c.JSON(fiber.Map{"success": true})
	}
	if _, dirty := session.Status(); dirty && c.QueryBool("discard") == false {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"success": false, "message": "Unsaved changes. Save first or close with discard."})
	}

	sessionsMu.Lock()
	delete(sessions, middleware.UserID(c))
	sessionsMu.Unlock()
	return c.JSON(fiber.Map{"success": true})
}

func EditorCatalog(c *fiber.Ctx) error {
	session, err := requireSession(c)
	if session == nil {
		return err
	}
	state, dirty := session.Status()
	return c.JSON(fiber.Map{
		"success":  true,
		"catalog":  session.Catalog(),
		"selected": session.Selected(),
		"state":    state,
		"dirty":    dirty,
	})
}

func EditorAddMainCategory(c *fiber.Ctx) error {
	session, err := requireSession(c)
	if session == nil {
		return err
	}
	type Request struct {
		Name string `json:"name" validate:"required"`
	}
	var req Request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Please enter a main category name."})
	}

	// The response is rendered inside the critical section: mc points
	// into the live tree, and a concurrent mutation must not race the
	// serializer.
	session.Lock()
	defer session.Unlock()
	mc := session.Store().AddMainCategory(req.Name)
	return c.JSON(fiber.Map{"success": true, "mainCategory": mc})
}

func EditorRemoveMainCategory(c *fiber.Ctx) error {
	session, err := requireSession(c)
	if session == nil {
		return err
	}
	session.Lock()
	found := session.Store().RemoveMainCategory(c.Params("id"))
	session.Unlock()
	if !found {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "Main category not found"})
	}
	return c.JSON(fiber.Map{"success": true})
}

func EditorAddSubCategory(c *fiber.Ctx) error {
	session, err := requireSession(c)
	if session == nil {
		return err
	}
	type Request struct {
		Name string `json:"name" validate:"required"`
	}
	var req Request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Please enter a sub-category name."})
	}

	session.Lock()
	defer session.Unlock()
	sc := session.Store().AddSubCategory(c.Params("id"), req.Name)
	if sc == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "Main category not found"})
	}
	return c.JSON(fiber.Map{"success": true, "subCategory": sc})
}

func EditorRemoveSubCategory(c *fiber.Ctx) error {
	session, err := requireSession(c)
	if session == nil {
		return err
	}
	session.Lock()
	found := session.Store().RemoveSubCategory(c.Params("id"))
	session.Unlock()
	if !found {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "Sub-category not found"})
	}
	return c.JSON(fiber.Map{"success": true})
}

// EditorSelectSubCategory switches the editing context. While dirty,
// the switch is refused until the client confirms discarding via
// ?discard=true, mirroring the navigation warning.
func EditorSelectSubCategory(c *fiber.Ctx) error {
	session, err := requireSession(c)
	if session == nil {
		return err
	}

	sc, err := session.Select(c.Params("id"), c.QueryBool("discard"))
	if errors.Is(err, editor.ErrUnsavedChanges) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"success": false,
			"message": "You have unsaved changes. Move without saving?",
		})
	}
	if errors.Is(err, editor.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "Sub-category not found"})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to load catalog"})
	}

	// sc points into the live tree; serialize it under the lock.
	session.Lock()
	defer session.Unlock()
	return c.JSON(fiber.Map{"success": true, "subCategory": sc})
}

func EditorUpdateSubCategory(c *fiber.Ctx) error {
	session, err := requireSession(c)
	if session == nil {
		return err
	}
	var upd editor.SubCategoryUpdate
	if err := c.BodyParser(&upd); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Cannot parse JSON"})
	}

	session.Lock()
	found := session.Store().UpdateSubCategory(c.Params("id"), upd)
	session.Unlock()
	if !found {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "Sub-category not found"})
	}
	return c.JSON(fiber.Map{"success": true})
}

// defaultQuestion is the template a freshly added question starts from.
func defaultQuestion() *models.Question {
	return &models.Question{
		Question:     "Enter the new question text.",
		QuestionType: models.TypeSingle,
		Answers: []models.Answer{
			{Text: "Choice 1 (correct)", Correct: true},
			{Text: "Choice 2"},
			{Text: "Choice 3"},
			{Text: "Choice 4"},
		},
		Explanation: "Enter the explanation here.",
	}
}

func EditorAddQuestion(c *fiber.Ctx) error {
	session, err := requireSession(c)
	if session == nil {
		return err
	}

	q := defaultQuestion()
	if len(c.Body()) > 0 {
		var posted models.Question
		if err := c.BodyParser(&posted); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Cannot parse JSON"})
		}
		if posted.Question != "" {
			q = &posted
		}
	}

	session.Lock()
	defer session.Unlock()
	added := session.Store().AddQuestion(c.Params("id"), q)
	if added == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "Sub-category not found"})
	}
	return c.JSON(fiber.Map{"success": true, "question": added})
}

func EditorRemoveQuestion(c *fiber.Ctx) error {
	session, err := requireSession(c)
	if session == nil {
		return err
	}
	index, err := c.ParamsInt("index")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Invalid question index"})
	}

	session.Lock()
	found := session.Store().RemoveQuestionAt(c.Params("id"), index)
	session.Unlock()
	if !found {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "Question not found"})
	}
	return c.JSON(fiber.Map{"success": true})
}

func EditorReorderQuestion(c *fiber.Ctx) error {
	session, err := requireSession(c)
	if session == nil {
		return err
	}
	type Request struct {
		OldIndex int `json:"oldIndex"`
		NewIndex int `json:"newIndex"`
	}
	var req Request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Cannot parse JSON"})
	}

	session.Lock()
	moved := session.Store().ReorderQuestion(c.Params("id"), req.OldIndex, req.NewIndex)
	session.Unlock()
	if !moved {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "Question not found"})
	}
	return c.JSON(fiber.Map{"success": true})
}

// EditorSave runs one end-to-end save attempt.
func EditorSave(c *fiber.Ctx) error {
	session, err := requireSession(c)
	if session == nil {
		return err
	}
	var req editor.SaveRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Cannot parse JSON"})
		}
	}

	err = session.Save(req)
	if errors.Is(err, editor.ErrSaveInFlight) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"success": false, "message": "A save is already in progress"})
	}
	if errors.Is(err, editor.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "Selected sub-category no longer exists"})
	}
	state, _ := session.Status()
	if err != nil {
		log.Printf("Editor save failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Save failed",
			"state":   state,
		})
	}

	return c.JSON(fiber.Map{"success": true, "message": "Saved successfully", "state": state})
}

func EditorStatus(c *fiber.Ctx) error {
	session, err := requireSession(c)
	if session == nil {
		return err
	}
	state, dirty := session.Status()
	return c.JSON(fiber.Map{
		"success": true,
		"state":   state,
		"dirty":   dirty,
	})
}

func EditorHistory(c *fiber.Ctx) error {
	session, err := requireSession(c)
	if session == nil {
		return err
	}
	limit := c.QueryInt("limit", 50)

	// Entry data references live tree nodes, so the response is
	// rendered while the lock is held.
	session.Lock()
	defer session.Unlock()
	entries := session.History().List(limit)
	formatted := make([]fiber.Map, 0, len(entries))
	for _, e := range entries {
		formatted = append(formatted, fiber.Map{
			"entry":   e,
			"message": session.History().Format(e),
		})
	}
	return c.JSON(fiber.Map{"success": true, "history": formatted})
}

func EditorClearHistory(c *fiber.Ctx) error {
	session, err := requireSession(c)
	if session == nil {
		return err
	}
	session.Lock()
	session.History().Clear()
	session.Unlock()
	return c.JSON(fiber.Map{"success": true})
}

func EditorExportHistory(c *fiber.Ctx) error {
	session, err := requireSession(c)
	if session == nil {
		return err
	}
	session.Lock()
	exported, expErr := session.History().Export()
	session.Unlock()
	if expErr != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to export history"})
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="change-history.json"`)
	return c.SendString(exported)
}

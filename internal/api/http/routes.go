package httpapi

import (
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/sunshine-face/internal/datasync"
	"github.com/i474232898/sunshine-face/internal/face"
)

var validate = validator.New()

// Face is the watch face as seen by the HTTP host adapter.
type Face interface {
	face.Engine
	State() face.RenderState
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, wf Face, dispatcher *datasync.Dispatcher) {
	v1 := app.Group("/api/v1")

	v1.Get("/state", func(c *fiber.Ctx) error {
		return c.JSON(wf.State())
	})

	v1.Get("/frame", func(c *fiber.Ctx) error {
		bounds, err := parseBounds(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return c.JSON(wf.Render(bounds))
	})

	v1.Post("/tick", func(c *fiber.Ctx) error {
		wf.OnTick()
		return c.JSON(wf.State())
	})

	v1.Post("/ambient", func(c *fiber.Ctx) error {
		var req ambientRequest
		if err := bindJSON(c, &req); err != nil {
			return err
		}
		wf.OnAmbientModeChanged(*req.Ambient)
		return c.JSON(wf.State())
	})

	v1.Post("/bounds", func(c *fiber.Ctx) error {
		var req boundsRequest
		if err := bindJSON(c, &req); err != nil {
			return err
		}
		return c.JSON(wf.OnApplyBounds(*req.Round))
	})

	v1.Post("/data", func(c *fiber.Ctx) error {
		var req dataRequest
		if err := bindJSON(c, &req); err != nil {
			return err
		}
		applied := dispatcher.HandleDataChanged("http", req.Events)
		return c.JSON(fiber.Map{
			"received": len(req.Events),
			"applied":  applied,
		})
	})
}

type ambientRequest struct {
	Ambient *bool `json:"ambient" validate:"required"`
}

type boundsRequest struct {
	Round *bool `json:"round" validate:"required"`
}

// dataRequest is a batch of data-sync events, as delivered by the phone.
type dataRequest struct {
	Events []datasync.DataEvent `json:"events" validate:"required,min=1,dive"`
}

func bindJSON(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := validate.Struct(out); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return nil
}

// parseBounds reads width/height query parameters; both default to 320.
func parseBounds(c *fiber.Ctx) (face.Bounds, error) {
	b := face.Bounds{Width: 320, Height: 320}

	if v := c.Query("width"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return b, err
		}
		b.Width = n
	}
	if v := c.Query("height"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return b, err
		}
		b.Height = n
	}

	if err := validate.Struct(b); err != nil {
		return b, err
	}
	return b, nil
}

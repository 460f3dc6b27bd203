package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"

	"deepmine/internal/app/play"
	"deepmine/internal/app/ports"
	"deepmine/internal/app/sim"
	"deepmine/internal/domain/mine"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

// MineService is the slice of play.Service the HTTP surface drives.
type MineService interface {
	View() play.View
	Submit(ctx context.Context, in sim.Input) (play.View, error)
	UseTool(ctx context.Context, use sim.ToolUse) (play.View, error)
	EnterMine(ctx context.Context) (play.View, error)
	LeaveMine(ctx context.Context) (play.View, error)
	DayEnd(ctx context.Context) (play.View, error)
	Events(ctx context.Context, limit int) (play.EventsResponse, error)
	Preview(floor int) (mine.FloorBlueprint, error)
}

type Handler struct {
	Mine MineService
	KPI  kpiSnapshotProvider
}

func (h Handler) RegisterRoutes(s *server.Hertz) {
	s.Use(corsMiddleware())

	g := s.Group("/api/mine")
	g.GET("/state", h.state)
	g.POST("/input", h.input)
	g.POST("/tool", h.tool)
	g.POST("/enter", h.enter)
	g.POST("/leave", h.leave)
	g.POST("/day-end", h.dayEnd)
	g.GET("/floors/:floor", h.floor)
	g.GET("/events", h.events)

	s.GET("/ops/kpi", h.kpi)
}

type toolRequest struct {
	Tool   string       `json:"tool"`
	Tier   string       `json:"tier"`
	Target mine.GridPos `json:"target"`
}

func (h Handler) state(_ context.Context, ctx *app.RequestContext) {
	ctx.JSON(consts.StatusOK, h.Mine.View())
}

func (h Handler) input(c context.Context, ctx *app.RequestContext) {
	var body sim.Input
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	resp, err := h.Mine.Submit(c, body)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) tool(c context.Context, ctx *app.RequestContext) {
	var body toolRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	tier := mine.TierBasic
	if body.Tier != "" {
		parsed, err := mine.ParseToolTier(body.Tier)
		if err != nil {
			writeErrorBody(ctx, consts.StatusBadRequest, "invalid_tool_tier", err.Error())
			return
		}
		tier = parsed
	}
	resp, err := h.Mine.UseTool(c, sim.ToolUse{
		Tool:   mine.ToolKind(body.Tool),
		Tier:   tier,
		Target: body.Target,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) enter(c context.Context, ctx *app.RequestContext) {
	h.respond(ctx, func() (play.View, error) { return h.Mine.EnterMine(c) })
}

func (h Handler) leave(c context.Context, ctx *app.RequestContext) {
	h.respond(ctx, func() (play.View, error) { return h.Mine.LeaveMine(c) })
}

func (h Handler) dayEnd(c context.Context, ctx *app.RequestContext) {
	h.respond(ctx, func() (play.View, error) { return h.Mine.DayEnd(c) })
}

func (h Handler) respond(ctx *app.RequestContext, fn func() (play.View, error)) {
	resp, err := fn()
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) floor(_ context.Context, ctx *app.RequestContext) {
	floor, err := strconv.Atoi(ctx.Param("floor"))
	if err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_floor", "floor must be a number")
		return
	}
	bp, err := h.Mine.Preview(floor)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, bp)
}

func (h Handler) events(c context.Context, ctx *app.RequestContext) {
	limit := 0
	if raw := string(ctx.Query("limit")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeErrorBody(ctx, consts.StatusBadRequest, "invalid_limit", "limit must be a number")
			return
		}
		limit = n
	}
	resp, err := h.Mine.Events(c, limit)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

type kpiSnapshotProvider interface {
	SnapshotAny() any
}

func (h Handler) kpi(_ context.Context, ctx *app.RequestContext) {
	if h.KPI == nil {
		writeErrorBody(ctx, consts.StatusNotFound, "not_configured", "kpi provider not configured")
		return
	}
	ctx.JSON(consts.StatusOK, h.KPI.SnapshotAny())
}

func decodeJSON(ctx *app.RequestContext, out any) error {
	body := ctx.Request.Body()
	if len(body) == 0 {
		return nil
	}
	return json.Unmarshal(body, out)
}

func writeError(ctx *app.RequestContext, err error) {
	switch {
	case errors.Is(err, play.ErrInvalidRequest):
		writeErrorBody(ctx, consts.StatusBadRequest, "bad_request", err.Error())
	case errors.Is(err, play.ErrNotOnFloor):
		writeErrorBody(ctx, consts.StatusConflict, "not_on_floor", err.Error())
	case errors.Is(err, ports.ErrNotFound):
		writeErrorBody(ctx, consts.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, ports.ErrConflict):
		writeErrorBody(ctx, consts.StatusConflict, "conflict", err.Error())
	default:
		writeErrorBody(ctx, consts.StatusInternalServerError, "internal_error", "internal error")
	}
}

func writeErrorBody(ctx *app.RequestContext, status int, code, message string) {
	ctx.JSON(status, map[string]any{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}

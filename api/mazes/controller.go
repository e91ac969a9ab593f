package mazesapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/beka-birhanu/labyrinth-api/api/identity"
	"github.com/beka-birhanu/labyrinth-api/maze"
	"github.com/beka-birhanu/labyrinth-api/pathfind"
	"github.com/beka-birhanu/labyrinth-api/service"
	"github.com/beka-birhanu/labyrinth-api/service/i"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const defaultLeaderboardLimit = 10

// MazeController manages maze session operations over HTTP.
type MazeController struct {
	sessionManager i.MazeSessionManager
}

// NewMazeController initializes a MazeController.
func NewMazeController(sm i.MazeSessionManager) (*MazeController, error) {
	if sm == nil {
		return nil, errors.New("maze controller requires a session manager")
	}
	return &MazeController{
		sessionManager: sm,
	}, nil
}

// RegisterPublic registers public routes.
func (mc *MazeController) RegisterPublic(route *gin.RouterGroup) {
	mazes := route.Group("/mazes")
	{
		mazes.GET("/:ID", mc.snapshot)
		mazes.GET("/:ID/path", mc.solve)
	}
	route.GET("/leaderboards/escapes", mc.leaderboard)
}

// RegisterProtected registers protected routes.
func (mc *MazeController) RegisterProtected(route *gin.RouterGroup) {
	mazes := route.Group("/mazes")
	{
		mazes.POST("/", mc.create)
		mazes.POST("/:ID/regenerate", mc.regenerate)
		mazes.POST("/:ID/escapes", mc.escape)
	}
}

// create handles maze session creation requests.
func (mc *MazeController) create(ctx *gin.Context) {
	var request CreateMazeRequest
	if err := ctx.ShouldBind(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	snapshot, err := mc.sessionManager.Create(ctx, request.Width, request.Height, request.Seed)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusCreated, newMazeResponse(snapshot))
}

// snapshot returns the wall layout of a session for rendering.
func (mc *MazeController) snapshot(ctx *gin.Context) {
	id, ok := mc.sessionID(ctx)
	if !ok {
		return
	}

	snap, err := mc.sessionManager.Snapshot(id)
	if err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, newMazeResponse(snap))
}

// regenerate carves a fresh layout for a session.
func (mc *MazeController) regenerate(ctx *gin.Context) {
	id, ok := mc.sessionID(ctx)
	if !ok {
		return
	}

	var request RegenerateRequest
	if err := ctx.ShouldBind(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	snap, err := mc.sessionManager.Regenerate(ctx, id, request.Seed)
	if err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, newMazeResponse(snap))
}

// solve answers shortest-path queries between two cells.
//
// Query parameters: from_row, from_col, to_row, to_col (required),
// ignore_walls (optional bool) and window (optional look-ahead prefix
// length). An unreachable target is a 200 with found=false; malformed
// or out-of-bounds coordinates are 400s.
func (mc *MazeController) solve(ctx *gin.Context) {
	id, ok := mc.sessionID(ctx)
	if !ok {
		return
	}

	from, ok := mc.cellParam(ctx, "from_row", "from_col")
	if !ok {
		return
	}
	to, ok := mc.cellParam(ctx, "to_row", "to_col")
	if !ok {
		return
	}

	ignoreWalls := ctx.Query("ignore_walls") == "true"
	window := 0
	if raw := ctx.Query("window"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "window must be a non-negative integer"})
			return
		}
		window = parsed
	}

	path, found, err := mc.sessionManager.Solve(id, from, to, ignoreWalls)
	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	case errors.Is(err, pathfind.ErrOutOfBounds):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	case err != nil:
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "error while solving path"})
		return
	}

	ctx.JSON(http.StatusOK, newPathResponse(path, found, window))
}

// escape records an authenticated user's exit time.
func (mc *MazeController) escape(ctx *gin.Context) {
	id, ok := mc.sessionID(ctx)
	if !ok {
		return
	}

	userID, ok := mc.claimedUserID(ctx)
	if !ok {
		return
	}

	var request EscapeRequest
	if err := ctx.ShouldBind(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := mc.sessionManager.Escape(ctx, id, userID, request.ElapsedMs); err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx.Status(http.StatusAccepted)
}

// leaderboard lists the fastest escapes for a grid size.
func (mc *MazeController) leaderboard(ctx *gin.Context) {
	width, err := strconv.Atoi(ctx.DefaultQuery("width", "10"))
	if err != nil || width < 1 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "width must be a positive integer"})
		return
	}
	height, err := strconv.Atoi(ctx.DefaultQuery("height", "10"))
	if err != nil || height < 1 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "height must be a positive integer"})
		return
	}
	limit, err := strconv.ParseInt(ctx.DefaultQuery("limit", strconv.Itoa(defaultLeaderboardLimit)), 10, 64)
	if err != nil || limit < 1 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
		return
	}

	entries, err := mc.sessionManager.TopEscapes(ctx, width, height, limit)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "error while reading leaderboard"})
		return
	}

	response := make([]LeaderboardEntryResponse, 0, len(entries))
	for _, entry := range entries {
		response = append(response, LeaderboardEntryResponse{
			UserID:    entry.Member,
			ElapsedMs: int64(entry.Score),
		})
	}
	ctx.JSON(http.StatusOK, response)
}

// sessionID parses the :ID path parameter, answering a 400 itself on
// failure.
func (mc *MazeController) sessionID(ctx *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Params.ByName("ID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid session id"})
		return uuid.Nil, false
	}
	return id, true
}

// cellParam parses one grid coordinate from a pair of query
// parameters, answering a 400 itself on failure.
func (mc *MazeController) cellParam(ctx *gin.Context, rowKey, colKey string) (maze.CellPosition, bool) {
	row, err := strconv.Atoi(ctx.Query(rowKey))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": rowKey + " must be an integer"})
		return maze.CellPosition{}, false
	}
	col, err := strconv.Atoi(ctx.Query(colKey))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": colKey + " must be an integer"})
		return maze.CellPosition{}, false
	}
	return maze.CellPosition{Row: row, Col: col}, true
}

// claimedUserID extracts the caller's user id from the middleware
// claims.
func (mc *MazeController) claimedUserID(ctx *gin.Context) (uuid.UUID, bool) {
	raw, exists := ctx.Get(identity.ContextUserClaims)
	if !exists {
		ctx.Status(http.StatusUnauthorized)
		return uuid.Nil, false
	}

	claims, ok := raw.(map[string]interface{})
	if !ok {
		ctx.Status(http.StatusUnauthorized)
		return uuid.Nil, false
	}

	idString, ok := claims["userID"].(string)
	if !ok {
		ctx.Status(http.StatusUnauthorized)
		return uuid.Nil, false
	}

	userID, err := uuid.Parse(idString)
	if err != nil {
		ctx.Status(http.StatusUnauthorized)
		return uuid.Nil, false
	}
	return userID, true
}

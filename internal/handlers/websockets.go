package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"motorheat/internal/models"
	"motorheat/internal/repository"
	"motorheat/internal/service"
	"motorheat/internal/thermal"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// Send/receive timing configuration and message size limits.
const (
	writeWait        = 10 * time.Second
	pongWait         = 60 * time.Second
	pingPeriod       = (pongWait * 9) / 10
	maxMsgSize       = 1 << 12 // 4 KB
	defaultInterval  = 100 * time.Millisecond
	maxInterval      = 10 * time.Second
	maxIntervalMilli = 10_000 // 10s in ms
	defaultBatch     = 1000
	maxBatch         = 10_000
)

// Envelope used for WebSocket messages.
type wsEnvelope struct {
	Type  string `json:"type"` // samples | done | error
	Data  any    `json:"data,omitempty"`
	Error string `json:"error,omitempty"`
}

// curveBatch is one "samples" message: points [Offset, Offset+len(Points)) of a mode's curve.
type curveBatch struct {
	Mode   thermal.Mode        `json:"mode"`
	Offset int                 `json:"offset"`
	Total  int                 `json:"total"`
	Points []models.CurvePoint `json:"points"`
}

// Upgrader for HTTP -> WebSocket. Consider tightening CheckOrigin in production.
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// curveCursor walks the curves of a run batch by batch.
type curveCursor struct {
	modes  []thermal.Mode
	curves [][]models.CurvePoint
	batch  int

	mode   int
	offset int
}

func (cur *curveCursor) next() (curveBatch, bool) {
	for cur.mode < len(cur.modes) && cur.offset >= len(cur.curves[cur.mode]) {
		cur.mode++
		cur.offset = 0
	}
	if cur.mode >= len(cur.modes) {
		return curveBatch{}, false
	}
	pts := cur.curves[cur.mode]
	end := min(cur.offset+cur.batch, len(pts))
	b := curveBatch{
		Mode:   cur.modes[cur.mode],
		Offset: cur.offset,
		Total:  len(pts),
		Points: pts[cur.offset:end],
	}
	cur.offset = end
	return b, true
}

// @Summary      Stream curve samples
// @Description  WebSocket. Sends {"type":"samples"} batches every interval, then {"type":"done"}. Without mode every mode of the run is streamed in solving order.
// @Tags         simulations
// @Param        id        path   string  true   "Run id"
// @Param        mode      query  string  false  "Duty mode"  Enums(S1_NOMINAL,S1_COOLING,S2,S3)
// @Param        interval  query  string  false  "Delay between batches, e.g. 50ms"
// @Param        batch     query  int     false  "Samples per message"
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /ws/simulations/{id} [get]
func (h *Handler) wsStreamCurve(c *gin.Context) {
	id := c.Param("id")
	modes, err := parseStreamModes(c.Query("mode"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	interval := h.parseInterval(c)

	// load everything before the upgrade so unknown runs get a plain 404
	cur := &curveCursor{modes: modes, curves: make([][]models.CurvePoint, len(modes)), batch: parseBatch(c)}
	for i, m := range modes {
		pts, err := h.services.Runs.Curve(c.Request.Context(), id, m)
		if err != nil {
			if errors.Is(err, repository.ErrRunNotFound) || errors.Is(err, service.ErrModeNotInRun) {
				c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
				return
			}
			h.logAndJSONError(c, http.StatusInternalServerError, errLoadRun, "ws_load_curve_failed", err, "run_id", id, "mode", m)
			return
		}
		cur.curves[i] = pts
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		if h.log != nil {
			h.log.Errorw("ws_upgrade_failed", "err", err)
		}
		return
	}
	defer func() { _ = conn.Close() }()

	// Configure read limits and pong handler to extend read deadline.
	conn.SetReadLimit(maxMsgSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	// Reader goroutine to handle control frames and detect disconnects.
	done := make(chan struct{})
	go h.startReader(conn, done)

	ticker := time.NewTicker(interval)
	ping := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		ping.Stop()
	}()

	// First batch goes out immediately.
	if !h.sendNext(conn, cur, id) {
		return
	}
	for {
		select {
		case <-done:
			return
		case <-c.Request.Context().Done():
			return
		case <-ping.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				if h.log != nil {
					h.log.Infow("ws_ping_failed", "err", err)
				}
				return
			}
		case <-ticker.C:
			if !h.sendNext(conn, cur, id) {
				return
			}
		}
	}
}

// sendNext writes the next batch, or "done" plus a close frame once the
// cursor is exhausted. It reports whether streaming should continue.
func (h *Handler) sendNext(conn *websocket.Conn, cur *curveCursor, runID string) bool {
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	b, ok := cur.next()
	if !ok {
		if err := conn.WriteJSON(wsEnvelope{Type: "done", Data: gin.H{"run_id": runID}}); err != nil && h.log != nil {
			h.log.Infow("ws_write_failed", "err", err)
		}
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, "done"), time.Now().Add(writeWait))
		return false
	}
	if err := conn.WriteJSON(wsEnvelope{Type: "samples", Data: b}); err != nil {
		if h.log != nil {
			h.log.Infow("ws_write_failed", "err", err, "run_id", runID)
		}
		return false
	}
	return true
}

// parseStreamModes reads ?mode=S2 (or a comma separated list). Empty means all modes.
func parseStreamModes(q string) ([]thermal.Mode, error) {
	if strings.TrimSpace(q) == "" {
		return thermal.Modes, nil
	}
	var modes []thermal.Mode
	for _, part := range strings.Split(q, ",") {
		m, err := thermal.ParseMode(part)
		if err != nil {
			return nil, err
		}
		modes = append(modes, m)
	}
	return modes, nil
}

// Helper: parseBatch reads ?batch=500 with bounds.
func parseBatch(c *gin.Context) int {
	if s := c.Query("batch"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v > 0 && v <= maxBatch {
			return v
		}
	}
	return defaultBatch
}

// Helper: parseInterval reads ?interval=2s or ?interval_ms=2000 with bounds.
func (h *Handler) parseInterval(c *gin.Context) time.Duration {
	interval := defaultInterval

	if s := c.Query("interval"); s != "" {
		if d, err := time.ParseDuration(s); err == nil && d > 0 && d <= maxInterval {
			return d
		}
	}

	if ms := c.Query("interval_ms"); ms != "" {
		if v, err := strconv.Atoi(ms); err == nil && v > 0 && v <= maxIntervalMilli {
			return time.Duration(v) * time.Millisecond
		}
	}

	return interval
}

// Helper: startReader drains incoming messages to handle control frames and detect closure.
func (h *Handler) startReader(conn *websocket.Conn, done chan<- struct{}) {
	defer close(done)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if h.log != nil {
				h.log.Infow("ws_read_closed", "err", err)
			}
			return
		}
	}
}

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"albumlabel/label"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// slotSize is a slot size change reported by a preview client.
type slotSize struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Mode   string `json:"mode"`
}

type dimensionsMessage struct {
	Changed      bool   `json:"changed"`
	Mode         string `json:"mode"`
	LabelWidth   int    `json:"label_width"`
	BitmapWidth  int    `json:"bitmap_width"`
	BitmapHeight int    `json:"bitmap_height"`
	Error        string `json:"error,omitempty"`
}

var (
	errBadWidth  = errors.New("invalid width")
	errBadHeight = errors.New("invalid height")
)

// check rejects sizes that would leave no room for a label in mode.
func (size slotSize) check(mode label.GroupingMode) error {
	if size.Width <= 0 {
		return errBadWidth
	}
	if size.Height < 0 || (mode == label.GroupingList && size.Height >= size.Width) {
		return errBadHeight
	}
	return nil
}

// PreviewServer renders labels on demand over HTTP.
type PreviewServer struct {
	renderer *label.LabelRenderer
	config   *LabelConfig
	cache    *PreviewCache
	echo     *echo.Echo
	upgrader websocket.Upgrader

	// Held exclusively while the label geometry changes and shared while
	// rendering with the current one.
	layoutMutex sync.RWMutex
	mode        label.GroupingMode

	albumMutex sync.RWMutex
	albums     []*Album
}

func NewPreviewServer(renderer *label.LabelRenderer, config *LabelConfig) *PreviewServer {
	s := &PreviewServer{
		renderer: renderer,
		config:   config,
		cache:    NewPreviewCache(5 * time.Minute),
		mode:     config.GetGrouping(),
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:    true,
		LogStatus: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			logger.WithField("module", "server").Debugf("%s %d", v.URI, v.Status)
			return nil
		},
	}))

	e.GET("/label.png", s.handleLabel)
	e.GET("/albums", s.handleAlbums)
	e.GET("/albums/:index/label.png", s.handleAlbumLabel)
	e.GET("/ws", s.handleWS)

	s.echo = e
	return s
}

func (s *PreviewServer) Handler() http.Handler {
	return s.echo
}

func (s *PreviewServer) SetAlbums(albums []*Album) {
	s.albumMutex.Lock()
	defer s.albumMutex.Unlock()
	s.albums = albums
}

func (s *PreviewServer) getAlbums() []*Album {
	s.albumMutex.RLock()
	defer s.albumMutex.RUnlock()
	return s.albums
}

// Start serves on addr until ctx is done.
func (s *PreviewServer) Start(ctx context.Context, addr string) error {
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.echo.Shutdown(shutdownCtx); err != nil {
			logWarnModule("server", "Shutdown failed: %v", err)
		}
	}()

	logInfoModule("server", "Listening on %s", addr)
	if err := s.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("preview server failed: %w", err)
	}
	return nil
}

// resize applies a slot size change. The caller holds layoutMutex. A size
// that fails check leaves the geometry untouched.
func (s *PreviewServer) resize(size slotSize) (dimensionsMessage, error) {
	mode := s.mode
	if size.Mode != "" {
		mode = label.ParseGroupingMode(size.Mode)
	}
	if err := size.check(mode); err != nil {
		return s.dimensions(false), err
	}
	changed := s.renderer.SetDimensions(size.Width, size.Height, mode)
	s.mode = mode
	if changed {
		s.cache.Reset()
	}
	return s.dimensions(changed), nil
}

func (s *PreviewServer) dimensions(changed bool) dimensionsMessage {
	d := s.renderer.Dimensions()
	return dimensionsMessage{
		Changed:      changed,
		Mode:         s.mode.String(),
		LabelWidth:   d.LabelWidth,
		BitmapWidth:  d.BitmapWidth,
		BitmapHeight: d.BitmapHeight,
	}
}

func cacheKey(req label.LabelRequest) string {
	return fmt.Sprintf("%d|%d|%q|%q|%q|%q", req.ViewType, req.SourceType, req.Title, req.Count, req.FilePath, req.FileDate)
}

// renderPNG renders req, resizing first when size is set.
func (s *PreviewServer) renderPNG(ctx context.Context, req label.LabelRequest, size *slotSize) ([]byte, error) {
	if size != nil {
		s.layoutMutex.Lock()
		defer s.layoutMutex.Unlock()
		if _, err := s.resize(*size); err != nil {
			return nil, echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
	} else {
		s.layoutMutex.RLock()
		defer s.layoutMutex.RUnlock()
	}

	key := cacheKey(req)
	generation := s.cache.Generation()
	if data, ok := s.cache.Get(key); ok {
		return data, nil
	}

	img := s.renderer.RenderLabel(label.ContextJob(ctx), req)
	defer s.renderer.RecycleLabel(img)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := encodePNG(img)
	if err != nil {
		return nil, fmt.Errorf("failed to encode label: %w", err)
	}
	s.cache.Set(generation, key, data)
	return data, nil
}

func querySize(c echo.Context) (*slotSize, error) {
	w := c.QueryParam("width")
	if w == "" {
		return nil, nil
	}
	width, err := strconv.Atoi(w)
	if err != nil || width <= 0 {
		return nil, echo.NewHTTPError(http.StatusBadRequest, errBadWidth.Error())
	}
	height := width
	if h := c.QueryParam("height"); h != "" {
		height, err = strconv.Atoi(h)
		if err != nil || height < 0 {
			return nil, echo.NewHTTPError(http.StatusBadRequest, errBadHeight.Error())
		}
	}
	return &slotSize{Width: width, Height: height, Mode: c.QueryParam("mode")}, nil
}

func (s *PreviewServer) viewParam(c echo.Context) label.ViewType {
	if v := c.QueryParam("view"); v != "" {
		return label.ParseViewType(v)
	}
	return s.config.GetView()
}

func (s *PreviewServer) handleLabel(c echo.Context) error {
	size, err := querySize(c)
	if err != nil {
		return err
	}

	req := label.LabelRequest{
		Title:      c.QueryParam("title"),
		Count:      c.QueryParam("count"),
		FilePath:   c.QueryParam("path"),
		FileDate:   c.QueryParam("date"),
		SourceType: label.ParseSourceType(c.QueryParam("source")),
		ViewType:   s.viewParam(c),
	}

	data, err := s.renderPNG(c.Request().Context(), req, size)
	if err != nil {
		return err
	}
	return c.Blob(http.StatusOK, "image/png", data)
}

func (s *PreviewServer) handleAlbums(c echo.Context) error {
	albums := s.getAlbums()
	if albums == nil {
		albums = []*Album{}
	}
	return c.JSON(http.StatusOK, albums)
}

func (s *PreviewServer) handleAlbumLabel(c echo.Context) error {
	albums := s.getAlbums()
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil || index < 0 || index >= len(albums) {
		return echo.NewHTTPError(http.StatusNotFound, "no such album")
	}
	size, err := querySize(c)
	if err != nil {
		return err
	}

	req := albums[index].Request(s.viewParam(c), s.config.GetDateFormat())
	data, err := s.renderPNG(c.Request().Context(), req, size)
	if err != nil {
		return err
	}
	return c.Blob(http.StatusOK, "image/png", data)
}

// handleWS applies the slot size changes a client streams and answers each
// with the resulting label geometry.
func (s *PreviewServer) handleWS(c echo.Context) error {
	ws, err := s.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}
	defer ws.Close()

	for {
		var size slotSize
		if err := ws.ReadJSON(&size); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logWarnModule("server", "Websocket read failed: %v", err)
			}
			return nil
		}

		s.layoutMutex.Lock()
		msg, err := s.resize(size)
		s.layoutMutex.Unlock()
		if err != nil {
			msg.Error = err.Error()
		}

		if err := ws.WriteJSON(msg); err != nil {
			logWarnModule("server", "Websocket write failed: %v", err)
			return nil
		}
	}
}

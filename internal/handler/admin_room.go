package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/venue-booking/internal/model"
	"github.com/iliyamo/venue-booking/internal/schedule"
)

type createRoomReq struct {
	Name          string `json:"name"`
	Capacity      uint32 `json:"capacity"`
	AvailableFrom string `json:"available_from"`
	AvailableTo   string `json:"available_to"`
}

// requireOwnedRoom loads a room and checks that the caller owns its
// venue.
func (h *AdminHandler) requireOwnedRoom(c echo.Context, roomID, userID uint64) (model.Room, bool, error) {
	ctx, cancel := reqContext(c)
	defer cancel()

	room, err := h.Rooms.GetByID(ctx, roomID)
	if err != nil {
		return model.Room{}, false, repoError(c, err)
	}
	if _, ok, err := h.requireOwnedVenue(c, room.VenueID, userID); !ok {
		return model.Room{}, false, err
	}
	return room, true, nil
}

// CreateRoom adds a room to the caller's venue. The availability window
// defaults to the full day and is normalized on write.
func (h *AdminHandler) CreateRoom(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	venueID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid venue id"})
	}
	var req createRoomReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name required"})
	}
	if req.Capacity == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "capacity must be positive"})
	}
	if _, ok, err := h.requireOwnedVenue(c, venueID, uid); !ok {
		return err
	}

	from := schedule.NormalizeTime(req.AvailableFrom, schedule.DefaultAvailableFrom)
	to := schedule.NormalizeTime(req.AvailableTo, schedule.DefaultAvailableTo)

	ctx, cancel := reqContext(c)
	defer cancel()

	room, err := h.Rooms.Create(ctx, venueID, req.Name, req.Capacity, from, to)
	if err != nil {
		return repoError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"room": roomToView(room, nil)})
}

type updateRoomReq struct {
	Name          *string `json:"name"`
	Capacity      *uint32 `json:"capacity"`
	AvailableFrom *string `json:"available_from"`
	AvailableTo   *string `json:"available_to"`
}

// UpdateRoom applies a partial update to a room in the caller's venue.
func (h *AdminHandler) UpdateRoom(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	roomID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
	}
	var req updateRoomReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name cannot be empty"})
	}
	if req.Capacity != nil && *req.Capacity == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "capacity must be positive"})
	}
	if _, ok, err := h.requireOwnedRoom(c, roomID, uid); !ok {
		return err
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	room, err := h.Rooms.Update(ctx, roomID, req.Name, req.Capacity, req.AvailableFrom, req.AvailableTo)
	if err != nil {
		return repoError(c, err)
	}
	photos, err := h.Rooms.ListPhotos(ctx, roomID)
	if err != nil {
		return repoError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"room": roomToView(room, photos)})
}

// DeleteRoom removes a room with its photos and bookings.
func (h *AdminHandler) DeleteRoom(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	roomID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
	}
	if _, ok, err := h.requireOwnedRoom(c, roomID, uid); !ok {
		return err
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	if err := h.Rooms.Delete(ctx, roomID); err != nil {
		return repoError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

type replacePhotosReq struct {
	Photos []string `json:"photos"`
}

// ReplacePhotos swaps a room's photo list for the submitted URLs, in
// order. The first URL becomes the cover photo.
func (h *AdminHandler) ReplacePhotos(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	roomID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
	}
	var req replacePhotosReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	for _, u := range req.Photos {
		if strings.TrimSpace(u) == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "photo urls cannot be empty"})
		}
	}
	room, ok2, err := h.requireOwnedRoom(c, roomID, uid)
	if !ok2 {
		return err
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	photos, err := h.Rooms.ReplacePhotos(ctx, roomID, req.Photos)
	if err != nil {
		return repoError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"room": roomToView(room, photos)})
}

package routes

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"charityevents/models"
)

func eventID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid event id."})
		return 0, false
	}
	return id, true
}

/* -------------------- Public browsing -------------------- */

// GET /api/events
func (d *deps) getEvents(c *gin.Context) {
	events, err := d.events.GetPublished()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not fetch events. Try again later."})
		return
	}
	c.JSON(http.StatusOK, events)
}

// GET /api/events/upcoming
func (d *deps) getUpcomingEvents(c *gin.Context) {
	events, err := d.events.GetUpcoming(6)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not fetch events. Try again later."})
		return
	}
	c.JSON(http.StatusOK, events)
}

// GET /api/events/search?date=&location=&category=
func (d *deps) searchEvents(c *gin.Context) {
	events, err := d.events.Search(models.EventFilter{
		Date:     c.Query("date"),
		Location: c.Query("location"),
		Category: c.Query("category"),
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not search events. Try again later."})
		return
	}
	c.JSON(http.StatusOK, events)
}

// GET /api/events/:id
func (d *deps) getEvent(c *gin.Context) {
	id, ok := eventID(c)
	if !ok {
		return
	}
	event, err := d.events.GetByID(id)
	if errors.Is(err, models.ErrEventNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Event does not exist."})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not fetch event. Try again later."})
		return
	}
	c.JSON(http.StatusOK, event)
}

// GET /api/events/:id/registrations
func (d *deps) getEventRegistrations(c *gin.Context) {
	id, ok := eventID(c)
	if !ok {
		return
	}
	regs, err := d.regs.ListByEvent(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not fetch registrations. Try again later."})
		return
	}
	c.JSON(http.StatusOK, regs)
}

// GET /api/categories
func (d *deps) getCategories(c *gin.Context) {
	categories, err := d.events.Categories()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not fetch categories. Try again later."})
		return
	}
	c.JSON(http.StatusOK, categories)
}

/* -------------------- Registration -------------------- */

type registerRequest struct {
	Name           string `json:"name"`
	Phone          string `json:"phone"`
	Email          string `json:"email"`
	Age            string `json:"age"`
	Experience     string `json:"experience"`
	Motivation     string `json:"motivation"`
	AllowContact   bool   `json:"allowContact"`
	TicketQuantity *int   `json:"ticketQuantity"` // nil means 1
}

// POST /api/events/:id/register
//
// Validation runs before any store access; all store-state failures come back
// from the transactional repository as sentinel errors.
func (d *deps) registerForEvent(c *gin.Context) {
	id, ok := eventID(c)
	if !ok {
		return
	}

	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Could not parse request data."})
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Phone = strings.TrimSpace(req.Phone)
	if req.Name == "" || req.Phone == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Name and phone number are mandatory fields."})
		return
	}

	quantity := 1
	if req.TicketQuantity != nil {
		quantity = *req.TicketQuantity
	}
	if quantity < 1 || quantity > 10 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Ticket quantity must be between 1 and 10."})
		return
	}

	participant := models.Participant{
		Name:         req.Name,
		Phone:        req.Phone,
		Email:        req.Email,
		Age:          req.Age,
		Experience:   req.Experience,
		Motivation:   req.Motivation,
		AllowContact: req.AllowContact,
	}

	registrationID, err := d.regs.Register(c.Request.Context(), id, participant, quantity)
	if err != nil {
		var capErr *models.CapacityError
		switch {
		case errors.Is(err, models.ErrEventNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "Event does not exist."})
		case errors.Is(err, models.ErrEventNotOpen):
			c.JSON(http.StatusBadRequest, gin.H{"message": "The event is currently not open for registration."})
		case errors.As(err, &capErr):
			c.JSON(http.StatusBadRequest, gin.H{
				"message": fmt.Sprintf("Insufficient places available. Only %d remaining.", capErr.Available),
			})
		case errors.Is(err, models.ErrDuplicateRegistration):
			c.JSON(http.StatusBadRequest, gin.H{"message": "You have already registered for this event."})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Registration failed. Try again later."})
		}
		return
	}

	// The participant counter changed, so cached event views are stale.
	if d.inv != nil {
		d.inv.PurgeEventsList(c)
		d.inv.PurgeEventItem(c)
	}

	c.JSON(http.StatusOK, gin.H{
		"message":        "Registration successful!",
		"registrationId": registrationID,
		"ticketQuantity": quantity,
	})
}

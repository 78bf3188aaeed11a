package routes

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"charityevents/models"
	"charityevents/utils"
)

/* -------------------- Auth -------------------- */

// POST /api/admin/login
func (d *deps) adminLogin(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Could not parse request data."})
		return
	}

	admin, err := d.admins.ValidateCredentials(req.Email, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Could not authenticate."})
		return
	}

	token, err := utils.GenerateToken(admin.Email, admin.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not authenticate."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Login successful!", "token": token})
}

/* -------------------- Back-office -------------------- */

// GET /api/admin/statistics
func (d *deps) getStatistics(c *gin.Context) {
	stats, err := d.events.Statistics()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not fetch statistics. Try again later."})
		return
	}
	c.JSON(http.StatusOK, stats)
}

// GET /api/admin/events
func (d *deps) getAllEventsAdmin(c *gin.Context) {
	events, err := d.events.GetAllAdmin()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not fetch events. Try again later."})
		return
	}
	c.JSON(http.StatusOK, events)
}

type eventRequest struct {
	Name            string   `json:"name"`
	Category        string   `json:"category"`
	Date            string   `json:"date"`
	Time            string   `json:"time"`
	Location        string   `json:"location"`
	Organizer       *string  `json:"organizer"`
	MaxParticipants *int     `json:"max_participants"`
	RegistrationFee *float64 `json:"registration_fee"`
	ContactInfo     *string  `json:"contact_info"`
	Status          string   `json:"status"`
	Description     *string  `json:"description"`
	ImageURL        *string  `json:"image_url"`
}

// eventFromRequest validates the payload and builds the model. A non-nil
// message means the caller should reply 400 with it.
func eventFromRequest(req eventRequest) (models.Event, string) {
	req.Name = strings.TrimSpace(req.Name)
	req.Location = strings.TrimSpace(req.Location)
	if req.Name == "" || req.Category == "" || req.Date == "" || req.Location == "" {
		return models.Event{}, "Name, category, date and location are mandatory fields."
	}
	if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		return models.Event{}, "Date must be in YYYY-MM-DD form."
	}

	normalizedTime, err := utils.NormalizeTime(req.Time)
	if err != nil {
		return models.Event{}, "Time must be in HH:MM or HH:MM:SS form."
	}

	status := req.Status
	if status == "" {
		status = models.StatusUpcoming
	}
	if !models.ValidStatus(status) {
		return models.Event{}, "Unknown event status."
	}

	if req.MaxParticipants != nil && *req.MaxParticipants < 1 {
		return models.Event{}, "Maximum participants must be positive."
	}

	fee := 0.0
	if req.RegistrationFee != nil {
		fee = *req.RegistrationFee
	}
	if fee < 0 {
		return models.Event{}, "Registration fee cannot be negative."
	}

	return models.Event{
		Name:            req.Name,
		Category:        req.Category,
		Date:            req.Date,
		Time:            normalizedTime,
		Location:        req.Location,
		Organizer:       req.Organizer,
		MaxParticipants: req.MaxParticipants,
		RegistrationFee: fee,
		ContactInfo:     req.ContactInfo,
		Status:          status,
		Description:     req.Description,
		ImageURL:        req.ImageURL,
	}, ""
}

// POST /api/admin/events
func (d *deps) createEvent(c *gin.Context) {
	var req eventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Could not parse request data."})
		return
	}

	event, msg := eventFromRequest(req)
	if msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": msg})
		return
	}

	if err := d.events.Create(&event); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not create event. Try again later."})
		return
	}

	if d.inv != nil {
		d.inv.PurgeEventsList(c)
		d.inv.PurgeEventItem(c)
		d.inv.PurgeCategories(c)
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Event created!", "id": event.ID})
}

// PUT /api/admin/events/:id
func (d *deps) updateEvent(c *gin.Context) {
	id, ok := eventID(c)
	if !ok {
		return
	}

	var req eventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Could not parse request data."})
		return
	}

	event, msg := eventFromRequest(req)
	if msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": msg})
		return
	}
	event.ID = id

	err := d.events.Update(&event)
	if errors.Is(err, models.ErrEventNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Event does not exist."})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not update event. Try again later."})
		return
	}

	if d.inv != nil {
		d.inv.PurgeEventsList(c)
		d.inv.PurgeEventItem(c)
		d.inv.PurgeCategories(c)
	}

	c.JSON(http.StatusOK, gin.H{"message": "Event updated successfully!"})
}

// DELETE /api/admin/events/:id
//
// The repository removes the event and its registrations in one transaction,
// so a partial delete is never observable.
func (d *deps) deleteEvent(c *gin.Context) {
	id, ok := eventID(c)
	if !ok {
		return
	}

	err := d.events.Delete(id)
	if errors.Is(err, models.ErrEventNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Event does not exist."})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not delete event."})
		return
	}

	if d.inv != nil {
		d.inv.PurgeEventsList(c)
		d.inv.PurgeEventItem(c)
		d.inv.PurgeCategories(c)
	}

	c.JSON(http.StatusOK, gin.H{"message": "Event deleted successfully!"})
}

package routes

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"charityevents/middlewares"
	"charityevents/models"
	"charityevents/utils"
)

// deps is the dependency container handlers hang off. Everything arrives as
// an interface so tests can swap in mocks.
type deps struct {
	events models.EventRepository
	regs   models.RegistrationRepository
	admins models.AdminRepository
	inv    *utils.CacheInvalidator
}

// RegisterRoutes wires the public listing/registration API and the admin
// back-office onto the server. Repositories, Redis and the invalidator are
// owned by the composition root and injected here.
func RegisterRoutes(
	server *gin.Engine,
	e models.EventRepository,
	r models.RegistrationRepository,
	a models.AdminRepository,
	rdb *redis.Client,
	inv *utils.CacheInvalidator,
) {
	d := &deps{events: e, regs: r, admins: a, inv: inv}

	// Global per-IP rate limit.
	globalLimiter := middlewares.NewRateLimiter(middlewares.LimiterConfig{
		RPS:     20,
		Burst:   40,
		IdleTTL: 3 * time.Minute,
	})
	server.Use(globalLimiter.Middleware(func(c *gin.Context) string {
		return "ip:" + c.ClientIP()
	}))

	// Public browse/search/register endpoints.
	api := server.Group("/api")
	api.GET("/events", d.getEvents)
	api.GET("/events/upcoming", d.getUpcomingEvents)
	api.GET("/events/search", d.searchEvents)
	api.GET("/events/:id", d.getEvent)
	api.GET("/events/:id/registrations", d.getEventRegistrations)
	api.GET("/categories", d.getCategories)
	api.POST("/events/:id/register", d.registerForEvent)

	// Login gets its own, much stricter, per-IP limit.
	loginLimiter := middlewares.NewRateLimiter(middlewares.LimiterConfig{
		RPS:     0.5,
		Burst:   2,
		IdleTTL: 10 * time.Minute,
	})
	api.POST("/admin/login",
		loginLimiter.Middleware(func(c *gin.Context) string { return "login:" + c.ClientIP() }),
		d.adminLogin,
	)

	// Back-office group: token auth, then per-admin rate limit and daily quota.
	admin := api.Group("/admin")
	admin.Use(middlewares.Authenticate)

	adminLimiter := middlewares.NewRateLimiter(middlewares.LimiterConfig{
		RPS:     5,
		Burst:   10,
		IdleTTL: 10 * time.Minute,
	})
	admin.Use(adminLimiter.Middleware(func(c *gin.Context) string {
		return "a:" + strconv.FormatInt(c.GetInt64("adminId"), 10)
	}))

	admin.Use(middlewares.Quota(rdb, middlewares.QuotaRule{
		Limit:  2000,
		Window: 24 * time.Hour,
		KeyFn: func(c *gin.Context) string {
			id := c.GetInt64("adminId")
			if id == 0 {
				return ""
			}
			return fmt.Sprintf("quota:admin:%d:day", id)
		},
	}))

	admin.GET("/statistics", d.getStatistics)
	admin.GET("/events", d.getAllEventsAdmin)
	admin.POST("/events", d.createEvent)
	admin.PUT("/events/:id", d.updateEvent)
	admin.DELETE("/events/:id", d.deleteEvent)
}

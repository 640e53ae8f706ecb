/*
Copyright 2025.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/classboard/classboard/pkg/catalog"
	"github.com/classboard/classboard/pkg/config"
	"github.com/classboard/classboard/pkg/session"
	"github.com/classboard/classboard/pkg/store"
	"github.com/classboard/classboard/pkg/types"
)

// ClassroomLister is the catalog read operation consumed by the handlers
// This interface enables mocking the catalog's failure modes in tests
type ClassroomLister interface {
	ListClassrooms(ctx context.Context) ([]types.Classroom, error)
}

type Handlers struct {
	config  *config.AppConfig
	store   *store.Store
	tracker *session.AuditTracker
	catalog ClassroomLister
}

func NewHandlers(cfg *config.AppConfig, dataStore *store.Store, tracker *session.AuditTracker, classrooms ClassroomLister) *Handlers {
	return &Handlers{
		config:  cfg,
		store:   dataStore,
		tracker: tracker,
		catalog: classrooms,
	}
}

// Homepage serves the plain landing page
func (h *Handlers) Homepage(c *gin.Context) {
	c.String(http.StatusOK, "This is the home page")
}

// GetTeacher returns the current teacher name
func (h *Handlers) GetTeacher(c *gin.Context) {
	name, err := h.store.Teacher.Read(c.Request.Context())
	if err != nil {
		logrus.WithError(err).Error("failed to read teacher name")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read teacher name"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"teacher": name})
}

// SetTeacherRequest is the body for the teacher update endpoint
type SetTeacherRequest struct {
	Name string `json:"name"`
}

// SetTeacher replaces the teacher name and reports the value it displaced
// A successful mutation refreshes the caller's audit cookie
func (h *Handlers) SetTeacher(c *gin.Context) {
	var req SetTeacherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	prev, err := h.store.Teacher.Set(c.Request.Context(), req.Name)
	if err != nil {
		if errors.Is(err, store.ErrEmptyTeacherName) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logrus.WithError(err).Error("failed to set teacher name")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to set teacher name"})
		return
	}

	h.refreshAuditCookie(c)
	c.JSON(http.StatusOK, gin.H{"teacher": req.Name, "previous": prev})
}

// ListStudents returns the roster in insertion order
func (h *Handlers) ListStudents(c *gin.Context) {
	students, err := h.store.Roster.List(c.Request.Context())
	if err != nil {
		logrus.WithError(err).Error("failed to list students")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list students"})
		return
	}

	c.JSON(http.StatusOK, students)
}

// AddStudentRequest is the body for the student creation endpoint
type AddStudentRequest struct {
	FirstName        string `json:"first_name" binding:"required"`
	LastName         string `json:"last_name" binding:"required"`
	FavoriteLanguage string `json:"favorite_language"`
}

// AddStudent appends a new student record and returns it with its assigned ID
// A successful mutation refreshes the caller's audit cookie
func (h *Handlers) AddStudent(c *gin.Context) {
	var req AddStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "first_name and last_name are required"})
		return
	}

	student, err := h.store.Roster.Add(c.Request.Context(), req.FirstName, req.LastName, req.FavoriteLanguage)
	if err != nil {
		logrus.WithError(err).Error("failed to add student")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to add student"})
		return
	}

	h.refreshAuditCookie(c)
	c.JSON(http.StatusCreated, student)
}

// GetStudent returns a single student by ID, 404 if absent
func (h *Handlers) GetStudent(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id must be an integer"})
		return
	}

	student, found, err := h.store.Roster.Find(c.Request.Context(), id)
	if err != nil {
		logrus.WithField("id", id).WithError(err).Error("failed to find student")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to find student"})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "student not found"})
		return
	}

	c.JSON(http.StatusOK, student)
}

// ListClassrooms returns the seeded classroom reference table
// Pool exhaustion maps to 503 so callers know to retry; a corrupt row is a
// server fault and maps to 500
func (h *Handlers) ListClassrooms(c *gin.Context) {
	rooms, err := h.catalog.ListClassrooms(c.Request.Context())
	if err != nil {
		if errors.Is(err, catalog.ErrPoolExhausted) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "classroom catalog busy, retry later"})
			return
		}
		logrus.WithError(err).Error("failed to list classrooms")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list classrooms"})
		return
	}

	c.JSON(http.StatusOK, rooms)
}

// LastAudit reports when the caller's session last mutated registry state
func (h *Handlers) LastAudit(c *gin.Context) {
	token, _ := c.Cookie(h.config.Session.CookieName)

	ts, known := h.tracker.LastUpdate(token)
	if !known {
		c.JSON(http.StatusOK, gin.H{"last_update": "never"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"last_update": ts.UTC().Format(time.RFC3339Nano)})
}

// refreshAuditCookie stamps the caller's session with the current time and
// hands the refreshed token back as a cookie
func (h *Handlers) refreshAuditCookie(c *gin.Context) {
	token, _ := c.Cookie(h.config.Session.CookieName)

	updated, err := h.tracker.RecordUpdate(token)
	if err != nil {
		// The mutation already happened; a failed audit stamp is logged, not
		// surfaced to the caller.
		logrus.WithError(err).Warn("failed to refresh audit token")
		return
	}

	c.SetCookie(h.config.Session.CookieName, updated, 0, "/", "", false, true)
}

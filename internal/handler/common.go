package handler // handler defines http handlers

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/iliyamo/recipe-blog-api/internal/middleware"
	"github.com/iliyamo/recipe-blog-api/internal/model"
)

// Store calls made by one request share this deadline.
const requestTimeout = 5 * time.Second

// Pagination bounds for list endpoints.
const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100
)

const msgInternal = "Internal server error"

// message writes the standard {"message": ...} body.
func message(c echo.Context, status int, msg string) error {
	return c.JSON(status, echo.Map{"message": msg})
}

// internalError logs err with the operation name and answers with a generic
// 500.  The detail stays in the log.
func internalError(c echo.Context, log logrus.FieldLogger, op string, err error) error {
	log.WithError(err).WithFields(logrus.Fields{
		"op":         op,
		"request_id": c.Response().Header().Get(echo.HeaderXRequestID),
	}).Error("request failed")
	return message(c, http.StatusInternalServerError, msgInternal)
}

func requestContext(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), requestTimeout)
}

// objectID parses the named path parameter.  ok is false when the value is
// not a valid ObjectID hex string; callers answer 400 before any query.
func objectID(c echo.Context, name string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param(name))
	return id, err == nil
}

// currentUser returns the identity stored by the authentication gate and its
// user ID.  ok is false when the route is not behind the gate or the token
// subject is not an ObjectID.
func currentUser(c echo.Context) (model.Identity, primitive.ObjectID, bool) {
	id, ok := middleware.IdentityFrom(c)
	if !ok {
		return id, primitive.NilObjectID, false
	}
	oid, err := id.ObjectID()
	if err != nil {
		return id, primitive.NilObjectID, false
	}
	return id, oid, true
}

// canModify is the ownership rule for owned resources: the owner or an
// admin may change or delete it.  It runs only after the resource is known
// to exist.
func canModify(id model.Identity, owner primitive.ObjectID) bool {
	return id.Owns(owner) || id.IsAdmin()
}

// page is a parsed ?page=&limit= pair.
type page struct {
	Number int64
	Limit  int64
}

func (p page) skip() int64 { return (p.Number - 1) * p.Limit }

// totalPages is ceil(total/limit).
func (p page) totalPages(total int64) int64 {
	return int64(math.Ceil(float64(total) / float64(p.Limit)))
}

// parsePage reads page and limit.  Missing, malformed and non-positive
// values fall back to the defaults; limit is capped at maxLimit and page at
// the largest value whose skip still fits in an int64.
func parsePage(c echo.Context) page {
	p := page{Number: defaultPage, Limit: defaultLimit}
	if n, err := strconv.ParseInt(c.QueryParam("page"), 10, 64); err == nil && n > 0 {
		p.Number = n
	}
	if n, err := strconv.ParseInt(c.QueryParam("limit"), 10, 64); err == nil && n > 0 {
		p.Limit = min(n, maxLimit)
	}
	// keep (Number-1)*Limit inside int64; such pages are simply empty
	if last := math.MaxInt64 / p.Limit; p.Number > last {
		p.Number = last
	}
	return p
}

// bindValid binds the JSON body into req and validates it.  It returns the
// message to send with a 400, or "" when req is usable.
func bindValid(c echo.Context, req interface{}) string {
	if err := c.Bind(req); err != nil {
		return "Invalid request body"
	}
	if err := c.Validate(req); err != nil {
		return err.Error()
	}
	return ""
}

func unauthenticated(c echo.Context) error {
	return message(c, http.StatusUnauthorized, middleware.MsgAuthFailed)
}

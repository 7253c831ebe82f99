package handler

import (
	"errors"
	"net/http"

	"taskhub/internal/auth"
	"taskhub/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Access policy outcomes. Cross-tenant invisibility renders as 404 so a
// foreign tenant cannot confirm a resource exists; permission denial
// inside the caller's own tenant renders as 403.
var (
	errNotVisible   = errors.New("not visible to caller's organization")
	errNoPermission = errors.New("insufficient permission")
)

// requireSession re-derives the caller's identity from the session
// cookie and resolves the tenant. Writes the failure response itself.
func requireSession(c *gin.Context, secret string) (*auth.Claims, uuid.UUID, bool) {
	sess := auth.SessionFromRequest(c, secret)
	if sess == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return nil, uuid.Nil, false
	}
	orgID, err := uuid.Parse(sess.OrganizationID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No organization found"})
		return nil, uuid.Nil, false
	}
	return sess, orgID, true
}

// authorizeTaskRead applies the tenant rule shared by every task
// handler. A task's tenant is its assignee's organization, recomputed
// here on each access because the assignee can change.
func authorizeTaskRead(sess *auth.Claims, task *model.Task) error {
	if task.Assignee.OrganizationID.String() != sess.OrganizationID {
		return errNotVisible
	}
	return nil
}

// authorizeTaskDelete allows deletion to admins and the task's creator.
func authorizeTaskDelete(sess *auth.Claims, task *model.Task) error {
	if err := authorizeTaskRead(sess, task); err != nil {
		return err
	}
	if sess.Role != model.RoleAdmin && task.CreatedByID.String() != sess.ID {
		return errNoPermission
	}
	return nil
}

// authorizeUserEdit allows admins to edit any user in their
// organization; everyone else may edit only themselves, and may not
// change their own role.
func authorizeUserEdit(sess *auth.Claims, target *model.User, changesRole bool) error {
	if sess.Role == model.RoleAdmin {
		return nil
	}
	if target.ID.String() != sess.ID {
		return errNoPermission
	}
	if changesRole {
		return errNoPermission
	}
	return nil
}

// respondTaskAccessError maps a policy error onto the uniform 404/403
// discipline.
func respondTaskAccessError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errNotVisible):
		c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
	case errors.Is(err, errNoPermission):
		c.JSON(http.StatusForbidden, gin.H{"error": "You don't have permission to delete this task"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to authorize request"})
	}
}

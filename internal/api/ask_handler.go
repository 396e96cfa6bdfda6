package api

import (
	"context"
	"errors"
	"net/http"

	"newsrelay/internal/assistant"
	"newsrelay/internal/logging"
	"newsrelay/internal/upstream"

	"github.com/gin-gonic/gin"
)

type Asker interface {
	Ask(ctx context.Context, question string) (*assistant.Answer, error)
}

// validationIssue mirrors the pydantic v1 error item FastAPI clients
// already parse: {"loc": [...], "msg": ..., "type": ...}.
type validationIssue struct {
	Loc  []string `json:"loc"`
	Msg  string   `json:"msg"`
	Type string   `json:"type"`
}

// GET /ask?q=
func AskHandler(svc Asker) gin.HandlerFunc {
	return func(c *gin.Context) {
		q, ok := c.GetQuery("q")
		if !ok || q == "" {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": []validationIssue{{
				Loc:  []string{"query", "q"},
				Msg:  "field required",
				Type: "value_error.missing",
			}}})
			return
		}

		// Upstream calls run to completion even if the caller goes away.
		ctx := context.WithoutCancel(c.Request.Context())

		ans, err := svc.Ask(ctx, q)
		if err != nil {
			status, detail := classifyError(err)
			logging.FromContext(ctx).WithError(err).WithField("status", status).Error("ask failed")
			c.JSON(status, gin.H{"detail": detail})
			return
		}
		c.JSON(http.StatusOK, ans)
	}
}

func classifyError(err error) (int, string) {
	var ue *upstream.Error
	if errors.As(err, &ue) {
		return http.StatusBadGateway, ue.Error()
	}
	var mf *upstream.MissingFieldError
	if errors.As(err, &mf) {
		return http.StatusBadGateway, mf.Error()
	}
	return http.StatusInternalServerError, "internal error"
}

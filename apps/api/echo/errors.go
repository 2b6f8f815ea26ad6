package echoapi

import (
	"net/http"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/Ramcharan123-lang/hackthon/core"
	"github.com/Ramcharan123-lang/hackthon/core/portal"
)

// errorResponse keeps failures in the same envelope shape as successes.
type errorResponse struct {
	Success bool              `json:"success"`
	Error   string            `json:"error"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// newAppHTTPErrorHandler returns a custom echo.HTTPErrorHandler that maps our
// errors onto the wire envelope.
func newAppHTTPErrorHandler(logger core.Logger, translator ut.Translator) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		var fields map[string]string
		code := http.StatusInternalServerError
		message := http.StatusText(code)

		switch origErr := errors.Cause(err).(type) {
		case *echo.HTTPError:
			if origErr.Internal != nil {
				if herr, ok := origErr.Internal.(*echo.HTTPError); ok {
					origErr = herr
				}
			}
			code = origErr.Code
			if msg, ok := origErr.Message.(string); ok {
				message = msg
			}
		case validator.ValidationErrors:
			code = http.StatusBadRequest
			message = "validation failed"
			fields = make(map[string]string, len(origErr))
			for _, vErr := range origErr {
				fields[vErr.Field()] = vErr.Translate(translator)
			}
		case *core.ValidationError:
			code = http.StatusBadRequest
			message = origErr.Error()
			if origErr.Fields != nil {
				fields = make(map[string]string, len(origErr.Fields))
				for _, fErr := range origErr.Fields {
					fields[fErr.Field] = fErr.Error
				}
			}
		default:
			if errors.Cause(err) == portal.ErrNotFound {
				code = http.StatusNotFound
				message = portal.ErrNotFound.Error()
				break
			}
			reqInfo := strings.Join([]string{ctx.Request().Method, ctx.Request().RequestURI}, " ")
			if clientID := ctx.Request().Header.Get(headerClientID); clientID != "" {
				reqInfo += " client=" + clientID
			}
			logger.Error(message, errors.Wrap(err, reqInfo))
		}

		if ctx.Echo().Debug && code == http.StatusInternalServerError {
			message = err.Error()
		}

		// Send response
		if !ctx.Response().Committed {
			if ctx.Request().Method == http.MethodHead {
				err = ctx.NoContent(code)
			} else {
				err = ctx.JSON(code, errorResponse{Error: message, Fields: fields})
			}
			if err != nil {
				ctx.Echo().Logger.Error(err)
			}
		}
	}
}

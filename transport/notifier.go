package transport

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/emmaeryne/amjednamoussa/application/notification"
	"github.com/emmaeryne/amjednamoussa/constant"
	"github.com/emmaeryne/amjednamoussa/model"
	"github.com/emmaeryne/amjednamoussa/utils/errors"
	validatorx "github.com/emmaeryne/amjednamoussa/utils/validator"
	gpvalidator "github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
)

type NotifierHandler struct {
	NotificationApp notification.NotificationApp
}

// NewNotifierTransport builds the router for the notifier deployable. When
// apiKey is non-empty the order-email endpoint requires it, so only the
// storefront backend and operators can invoke it directly.
func NewNotifierTransport(notificationApp notification.NotificationApp, apiKey string) http.Handler {
	router := mux.NewRouter()

	nh := &NotifierHandler{NotificationApp: notificationApp}

	emailRoute := router.PathPrefix("/order-email").Subrouter()
	emailRoute.HandleFunc("", nh.SendOrderEmail).Methods(http.MethodPost)
	if apiKey != "" {
		emailRoute.Use(InternalMiddleware(apiKey))
	}

	router.HandleFunc("/health", nh.Health).Methods(http.MethodGet)

	router.Use(LoggingMiddleware())

	return router
}

// SendOrderEmail handles a notification request: schema validation, total
// integrity check, then email dispatch. A failed integrity check withholds
// the messages but the order itself, already committed upstream, stands.
func (s *NotifierHandler) SendOrderEmail(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req model.OrderNotificationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := validatorx.ValidateStruct(&req); err != nil {
		writeValidationError(w, validationDetails(err))
		return
	}

	res, err := s.NotificationApp.Process(ctx, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

func (s *NotifierHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeSuccess(w, map[string]string{"status": "ok"})
}

// validationDetails flattens field errors into a client-facing list.
func validationDetails(err error) []string {
	fieldErrors, ok := err.(gpvalidator.ValidationErrors)
	if !ok {
		return []string{err.Error()}
	}

	details := make([]string, 0, len(fieldErrors))
	for _, fe := range fieldErrors {
		details = append(details, fmt.Sprintf("%s: failed on %s", fe.Field(), fe.Tag()))
	}
	return details
}

package health

import (
	"encoding/json"
	"net/http"

	"github.com/ONSdigital/go-ns/log"
)

type healthResponse struct {
	Status string `json:"status"`
}

// EmptyHealthcheck reports a healthy status. The service holds no downstream
// dependencies, so there is nothing else to check.
func EmptyHealthcheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	body, err := json.Marshal(healthResponse{Status: "OK"})
	if err != nil {
		log.ErrorC("marshal json", err, nil)
		return
	}
	if _, err = w.Write(body); err != nil {
		log.ErrorC("writing json body", err, log.Data{"json": string(body)})
	}

}

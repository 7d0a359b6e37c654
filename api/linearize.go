package api

import (
	"net/http"

	"github.com/Mzandre2/TrueCruve-Toolbox/models"
	"github.com/Mzandre2/TrueCruve-Toolbox/processor"
	"github.com/ONSdigital/go-ns/log"
	"github.com/json-iterator/go"
)

// Error types
var (
	internalError = "Failed to process the request due to an internal error"
)

// Content types
var (
	contentJSON = "application/json"
)

func (api *ToolboxAPI) linearizeFeatures(w http.ResponseWriter, r *http.Request) {

	log.Debug("linearizeFeatures", log.Data{"headers": r.Header})
	request, err := models.CreateLinearizeRequest(r.Body)
	if err != nil {
		log.Error(err, nil)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err = request.ValidateLinearizeRequest(); err != nil {
		log.Error(err, nil)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	response, err := processor.ProcessRequest(r.Context(), request)
	if err != nil {
		log.Error(err, log.Data{})
		setErrorCode(w, err)
		return
	}

	bytes, err := jsoniter.Marshal(response)
	if err != nil {
		log.Error(err, log.Data{})
		setErrorCode(w, err)
		return
	}

	setContentType(w, contentJSON)
	w.WriteHeader(http.StatusOK)
	_, err = w.Write(bytes)
	if err != nil {
		log.Error(err, log.Data{})
		setErrorCode(w, err)
		return
	}

}

func setContentType(w http.ResponseWriter, contentType string) {
	w.Header().Set("Content-Type", contentType)
}

func setErrorCode(w http.ResponseWriter, err error) {
	log.Debug("error is", log.Data{"error": err})
	http.Error(w, internalError, http.StatusInternalServerError)
}

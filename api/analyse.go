package api

import (
	"encoding/json"
	"net/http"

	"github.com/Mzandre2/TrueCruve-Toolbox/analyser"
	"github.com/Mzandre2/TrueCruve-Toolbox/models"
	"github.com/ONSdigital/go-ns/log"
)

func (api *ToolboxAPI) analyseFeatures(w http.ResponseWriter, r *http.Request) {

	log.Debug("analyseFeatures", log.Data{"headers": r.Header})
	request, err := models.CreateAnalyseRequest(r.Body)
	if err != nil {
		log.Error(err, nil)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err = request.ValidateAnalyseRequest(); err != nil {
		log.Error(err, nil)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	response, err := analyser.AnalyseFeatures(request)
	if err != nil {
		log.Error(err, log.Data{})
		setErrorCode(w, err)
		return
	}

	bytes, err := json.Marshal(response)
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

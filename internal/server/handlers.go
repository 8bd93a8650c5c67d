package server

import (
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gorilla/mux"
)

// DatasetInfo summarizes one normalized dataset file
type DatasetInfo struct {
	Name     string    `json:"name"`
	File     string    `json:"file"`
	Records  int       `json:"records"`
	Bytes    int64     `json:"bytes"`
	Modified time.Time `json:"modified"`
}

// DatasetIndex is the response of the dataset listing endpoint
type DatasetIndex struct {
	Datasets []DatasetInfo `json:"datasets"`
	Count    int           `json:"count"`
}

func (s *Server) listDatasets(w http.ResponseWriter, r *http.Request) {
	entries, err := os.ReadDir(s.config.DataDir)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "failed to read data directory")
		return
	}

	index := DatasetIndex{Datasets: []DatasetInfo{}}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		path := filepath.Join(s.config.DataDir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}

		// Count records without decoding full field contents
		var records []json.RawMessage
		if err := json.Unmarshal(data, &records); err != nil {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}

		index.Datasets = append(index.Datasets, DatasetInfo{
			Name:     strings.TrimSuffix(entry.Name(), ".json"),
			File:     entry.Name(),
			Records:  len(records),
			Bytes:    info.Size(),
			Modified: info.ModTime(),
		})
	}
	index.Count = len(index.Datasets)

	s.writeJSON(w, http.StatusOK, index)
}

func (s *Server) getDataset(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	name := vars["name"]

	// Reject anything that could escape the data directory
	if name != filepath.Base(name) || strings.Contains(name, "..") {
		s.writeError(w, http.StatusBadRequest, "invalid dataset name")
		return
	}

	path := filepath.Join(s.config.DataDir, name+".json")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			s.writeError(w, http.StatusNotFound, "dataset not found")
			return
		}
		s.writeError(w, http.StatusInternalServerError, "failed to read dataset")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (s *Server) healthCheck(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "healthy",
		"time":   time.Now().UTC(),
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"error": message})
}

package cmd

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"github.com/notare/notare/analyze"
	"github.com/notare/notare/extract"
	"github.com/notare/notare/model"
	"github.com/notare/notare/selection"
	"github.com/notare/notare/simplify"
	"github.com/notare/notare/splice"
	"github.com/rs/cors"
	"github.com/spf13/cobra"
)

var serveFlags struct {
	addr string
}

func init() {
	serveCmd.Flags().StringVar(&serveFlags.addr, "addr", defaultAddr(), "listen address")
	rootCmd.AddCommand(serveCmd)
}

func defaultAddr() string {
	if addr := os.Getenv("NOTARE_ADDR"); addr != "" {
		return addr
	}
	return ":8080"
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the score transforms over HTTP",
	Long:  `Serves the score transforms over HTTP; scores travel as musicjson`,
	Run: func(cmd *cobra.Command, args []string) {
		router := newRouter()
		log.Printf("listening on %s", serveFlags.addr)
		log.Fatal(http.ListenAndServe(serveFlags.addr, cors.Default().Handler(router)))
	},
}

func newRouter() *mux.Router {
	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/extract", handleExtract).Methods("POST")
	router.HandleFunc("/add", handleAdd).Methods("POST")
	router.HandleFunc("/simplify", handleSimplify).Methods("POST")
	router.HandleFunc("/analyze", handleAnalyze).Methods("POST")
	return router
}

func writeError(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(model.ErrorResponse{Error: err.Error()})
}

func decodeBody(w http.ResponseWriter, r *http.Request, into any) bool {
	if err := json.NewDecoder(r.Body).Decode(into); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return false
	}
	return true
}

func loadRaw(raw json.RawMessage) (*model.Score, error) {
	return eng.Load("", bytes.NewReader(raw))
}

func writeScore(w http.ResponseWriter, s *model.Score) {
	w.Header().Set("Content-Type", "application/json")
	if _, err := eng.Write(s, "musicjson", "", w); err != nil {
		log.Printf("writing response: %v", err)
	}
}

func handleExtract(w http.ResponseWriter, r *http.Request) {
	var req model.ExtractRequest
	if !decodeBody(w, r, &req) {
		return
	}
	s, err := loadRaw(req.Score)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	res, err := extract.Sections(s, extract.Options{
		Measures:    req.Measures,
		PartNames:   req.PartNames,
		PartNumbers: req.PartNumbers,
		ChordsOnly:  req.ChordsOnly,
	})
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeScore(w, res)
}

func handleAdd(w http.ResponseWriter, r *http.Request) {
	var req model.AddRequest
	if !decodeBody(w, r, &req) {
		return
	}
	base, err := loadRaw(req.Score)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	inc, err := loadRaw(req.ToAdd)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := splice.Add(base, inc, req.Measure, !req.After); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeScore(w, base)
}

func handleSimplify(w http.ResponseWriter, r *http.Request) {
	var req model.SimplifyRequest
	if !decodeBody(w, r, &req) {
		return
	}
	s, err := loadRaw(req.Score)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	ranges, err := selection.ParseMeasureSpec(req.Measures)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	staves, err := selection.SelectParts(s, req.PartNames, req.PartNumbers)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	algs := make([]simplify.Algorithm, 0, len(req.Algorithms))
	for _, spec := range req.Algorithms {
		algs = append(algs, simplify.Algorithm{Name: spec.Name, Params: spec.Params})
	}
	simplify.Apply(s, algs, simplify.Context{Ranges: ranges, Staves: staves})
	writeScore(w, s)
}

func handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req model.AnalyzeRequest
	if !decodeBody(w, r, &req) {
		return
	}
	s, err := loadRaw(req.Score)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	report, err := analyze.Report(s, req.Metrics)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte(report))
}

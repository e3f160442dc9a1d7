package handler

import (
	"net/http"
	"sort"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/adsync-api/internal/scheduler"
	"github.com/vfg2006/adsync-api/pkg/apiErrors"
)

// JobTypeAll dispara todos os jobs registrados
const JobTypeAll = "all"

// Jobs indexa os agendamentos pelo nome usado na rota
type Jobs map[string]scheduler.Job

func NewJobs(jobs ...scheduler.Job) Jobs {
	registry := make(Jobs, len(jobs))
	for _, job := range jobs {
		if job != nil {
			registry[job.Name()] = job
		}
	}
	return registry
}

func (j Jobs) names() []string {
	names := make([]string, 0, len(j))
	for name := range j {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RunJob executa manualmente um job em segundo plano
func RunJob(jobs Jobs) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		jobType := httprouter.ParamsFromContext(r.Context()).ByName("type")

		logrus.WithField("type", jobType).Info("INIT - RunJob")

		var targets []scheduler.Job
		if jobType == JobTypeAll {
			for _, name := range jobs.names() {
				targets = append(targets, jobs[name])
			}
		} else if job, ok := jobs[jobType]; ok {
			targets = append(targets, job)
		} else {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Tipo de job inválido", map[string]any{"accepted": append(jobs.names(), JobTypeAll)})
			return
		}

		started := make(map[string]bool, len(targets))
		for _, job := range targets {
			started[job.Name()] = job.TriggerManualSync()
		}

		writeJSON(w, http.StatusAccepted, map[string]any{
			"message": "Execução solicitada",
			"type":    jobType,
			"started": started,
		})
	})
}

// GetJobsStatus retorna o estado da última execução de cada job
func GetJobsStatus(jobs Jobs) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		status := make(map[string]any, len(jobs))
		for name, job := range jobs {
			status[name] = job.GetStatus()
		}

		writeJSON(w, http.StatusOK, status)
	})
}

// Command plannerd is the HTTP entrypoint: loads the catalog, groups,
// and params once at startup, accepts a student's passed/desired (and
// optional grades) files as a multipart upload, kicks off a solve
// in the background, and returns a run id callers poll for status. Uses
// a gin router with a permissive CORS middleware block, multipart
// upload into a "db/" directory, and a background goroutine that
// populates a sqlite row once the external solver process finishes.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/rhyrak/degreeplan/internal/calendar"
	"github.com/rhyrak/degreeplan/internal/csvio"
	"github.com/rhyrak/degreeplan/internal/groups"
	"github.com/rhyrak/degreeplan/internal/modelbuilder"
	"github.com/rhyrak/degreeplan/internal/rundb"
	"github.com/rhyrak/degreeplan/internal/solverdriver"
	"github.com/rhyrak/degreeplan/pkg/model"
)

const uploadDir = "db"

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Fprintln(os.Stderr, "plannerd: no .env file found, continuing with process environment")
	}
	logger := zerolog.New(os.Stdout).With().Timestamp().Str("component", "plannerd").Logger()

	os.MkdirAll(uploadDir, 0o755)

	db, err := rundb.Open(envOr("RUNDB_PATH", "runs.sqlite"))
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to open run ledger")
	}
	defer db.Close()

	catalogFile := envOr("CATALOG_FILE", "cls.csv")
	paramsFile := envOr("PARAMS_FILE", "params.props")
	groupDir := envOr("GROUPS_DIR", "groups")
	solverBinary := envOr("SOLVER_BINARY", "solver")

	params, err := csvio.LoadParams(paramsFile)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load params.props")
	}
	cat, err := csvio.LoadCatalog(catalogFile)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load catalog")
	}
	groupFiles, _ := filepath.Glob(filepath.Join(groupDir, "*.grp"))
	reg, err := csvio.LoadGroupRegistry(groupFiles, cat)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load group registry")
	}

	s := &server{
		cat: cat, reg: reg, params: params, db: db,
		solverBinary: solverBinary, logger: logger,
	}

	r := gin.Default()
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	r.GET("/runs", s.handleListRuns)
	r.GET("/runs/:id", s.handleGetRun)
	r.POST("/runs", s.handlePostRun)

	addr := envOr("LISTEN_ADDR", ":3001")
	r.Run(addr)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

type server struct {
	cat          *model.Catalog
	reg          *groups.Registry
	params       *model.Params
	db           *rundb.DB
	solverBinary string
	logger       zerolog.Logger
}

func (s *server) handleListRuns(ctx *gin.Context) {
	runs, err := s.db.List()
	if err != nil {
		ctx.Status(http.StatusInternalServerError)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"runs": runs})
}

func (s *server) handleGetRun(ctx *gin.Context) {
	id := ctx.Param("id")
	run, err := s.db.Get(id)
	if err != nil {
		ctx.Status(http.StatusNotFound)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"run": run})
}

func (s *server) handlePostRun(ctx *gin.Context) {
	form, err := ctx.MultipartForm()
	if err != nil {
		s.logger.Warn().Err(err).Msg("error reading multipart form")
		ctx.String(http.StatusBadRequest, err.Error())
		return
	}
	if form.File["passed"] == nil || form.File["desired"] == nil {
		ctx.Status(http.StatusBadRequest)
		return
	}

	runID := uuid.New().String()
	passedPath := filepath.Join(uploadDir, runID+"-passed.txt")
	desiredPath := filepath.Join(uploadDir, runID+"-desired.txt")
	gradesPath := filepath.Join(uploadDir, runID+"-grades.txt")
	ctx.SaveUploadedFile(form.File["passed"][0], passedPath)
	ctx.SaveUploadedFile(form.File["desired"][0], desiredPath)
	if form.File["grades"] != nil {
		ctx.SaveUploadedFile(form.File["grades"][0], gradesPath)
	} else {
		gradesPath = ""
	}

	modelPath := filepath.Join(uploadDir, runID+".lp")
	solutionPath := filepath.Join(uploadDir, runID+".sol")
	now := time.Now()
	if err := s.db.Start(runID, modelPath, now); err != nil {
		ctx.Status(http.StatusInternalServerError)
		return
	}

	go s.runSolve(runID, passedPath, desiredPath, gradesPath, modelPath, solutionPath)

	ctx.JSON(http.StatusOK, gin.H{"id": runID})
}

func (s *server) runSolve(runID, passedPath, desiredPath, gradesPath, modelPath, solutionPath string) {
	finish := func(status rundb.Status, report string) {
		s.db.Finish(runID, status, solutionPath, report, time.Now())
	}

	passed, err := csvio.LoadPassedCourses(passedPath)
	if err != nil {
		finish(rundb.StatusFailed, err.Error())
		return
	}
	desired, err := csvio.LoadDesiredCourses(desiredPath)
	if err != nil {
		finish(rundb.StatusFailed, err.Error())
		return
	}
	if gradesPath != "" {
		grades, err := csvio.LoadEstimatedGrades(gradesPath, s.params.MinGradeThres)
		if err != nil {
			finish(rundb.StatusFailed, err.Error())
			return
		}
		for _, c := range s.cat.Courses() {
			if g, ok := grades[c.Code]; ok {
				c.EstimatedGrade = g
			}
		}
	}

	student := &model.StudentInput{
		Passed:             passed,
		Desired:            desired,
		MaxNumCrsDurThesis: 3,
		ObjWeights:         model.ObjectiveWeights{DN: 1, DL: 1, Cr: 0.01},
	}
	student.Normalize()

	now := time.Now()
	cal := calendar.New(now.Day(), int(now.Month()), now.Year())

	builder := modelbuilder.New(s.cat, s.reg, s.params, student, cal)
	m, err := builder.Build()
	if err != nil {
		finish(rundb.StatusFailed, err.Error())
		return
	}

	driver := solverdriver.New(solverdriver.Config{
		BinaryPath:   s.solverBinary,
		ModelPath:    modelPath,
		SolutionPath: solutionPath,
		Timeout:      2 * time.Minute,
	}, s.logger)

	_, err = driver.Solve(context.Background(), m, s.cat, s.params.Smax)
	switch {
	case err == solverdriver.ErrInfeasible:
		finish(rundb.StatusInfeasible, err.Error())
	case err != nil:
		finish(rundb.StatusFailed, err.Error())
	default:
		finish(rundb.StatusOptimal, "ok")
	}
}

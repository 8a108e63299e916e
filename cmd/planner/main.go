// Command planner is the CLI entrypoint: load the program catalog,
// groups, and params once, read one student's input files, run a solve
// through the external MILP solver, and print a per-term report. Uses a
// flat Configuration struct of file paths and a sequential
// load/run/report/print flow, with no subcommands.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/olekukonko/tablewriter"
	"github.com/rs/zerolog"

	"github.com/rhyrak/degreeplan/internal/calendar"
	"github.com/rhyrak/degreeplan/internal/csvio"
	"github.com/rhyrak/degreeplan/internal/modelbuilder"
	"github.com/rhyrak/degreeplan/internal/rundb"
	"github.com/rhyrak/degreeplan/internal/solverdriver"
	"github.com/rhyrak/degreeplan/pkg/model"
)

// Configuration holds every input file path plus the student-specific
// knobs that don't belong in any of those files.
type Configuration struct {
	ParamsFile    string
	CatalogFile   string
	GroupFiles    []string
	PassedFile    string
	DesiredFile   string
	GradesFile    string
	ModelFile     string
	SolutionFile  string
	SolverBinary  string
	SolverTimeout time.Duration
	RunDBPath     string

	Honors             bool
	S1Off              bool
	S2Off              bool
	STOff              bool
	MaxNumCrsPerSem    int
	MaxNumCrsDurThesis int
	Concentration      string
	NumOUThisYear      int
	WeightDN           float64
	WeightDL           float64
	WeightCr           float64
	WeightGr           float64
}

func main() {
	if err := godotenv.Load(); err != nil {
		// Absence of a .env file is not fatal; process env still applies.
		fmt.Fprintln(os.Stderr, "planner: no .env file found, continuing with process environment")
	}

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).
		With().Timestamp().Str("component", "planner").Logger()

	cfg := parseFlags()

	params, err := csvio.LoadParams(cfg.ParamsFile)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load params.props")
	}
	cat, err := csvio.LoadCatalog(cfg.CatalogFile)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load catalog")
	}
	reg, err := csvio.LoadGroupRegistry(cfg.GroupFiles, cat)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load group registry")
	}

	grades, err := csvio.LoadEstimatedGrades(cfg.GradesFile, params.MinGradeThres)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load estimated grades")
	}
	for _, c := range cat.Courses() {
		if g, ok := grades[c.Code]; ok {
			c.EstimatedGrade = g
		}
	}

	student, err := loadStudent(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load student input")
	}
	student.Normalize()

	now := time.Now()
	cal := calendar.New(now.Day(), int(now.Month()), now.Year())

	builder := modelbuilder.New(cat, reg, params, student, cal)
	m, err := builder.Build()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to build model")
	}

	runID := uuid.New().String()
	db, err := rundb.Open(cfg.RunDBPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to open run ledger")
	}
	defer db.Close()
	if err := db.Start(runID, cfg.ModelFile, now); err != nil {
		logger.Fatal().Err(err).Msg("failed to record run start")
	}

	driver := solverdriver.New(solverdriver.Config{
		BinaryPath:   cfg.SolverBinary,
		ModelPath:    cfg.ModelFile,
		SolutionPath: cfg.SolutionFile,
		Timeout:      cfg.SolverTimeout,
	}, logger)

	solution, err := driver.Solve(context.Background(), m, cat, params.Smax)
	finishedAt := time.Now()
	switch {
	case err == solverdriver.ErrInfeasible:
		db.Finish(runID, rundb.StatusInfeasible, "", err.Error(), finishedAt)
		color.Red("No feasible schedule exists under the given constraints.")
		os.Exit(1)
	case err != nil:
		db.Finish(runID, rundb.StatusFailed, "", err.Error(), finishedAt)
		logger.Fatal().Err(err).Msg("solve failed")
	default:
		db.Finish(runID, rundb.StatusOptimal, cfg.SolutionFile, "ok", finishedAt)
	}

	printReport(cat, solution, params, runID)
}

func parseFlags() Configuration {
	cfg := Configuration{}
	flag.StringVar(&cfg.ParamsFile, "params", "params.props", "program parameters file")
	flag.StringVar(&cfg.CatalogFile, "catalog", "cls.csv", "course catalog file")
	var groupDir string
	flag.StringVar(&groupDir, "groups", "groups", "directory of *.grp files")
	flag.StringVar(&cfg.PassedFile, "passed", "passedcourses.txt", "student's passed courses file")
	flag.StringVar(&cfg.DesiredFile, "desired", "desiredcourses.txt", "student's desired courses file")
	flag.StringVar(&cfg.GradesFile, "grades", "estimated_grades.txt", "student's estimated grades file")
	flag.StringVar(&cfg.ModelFile, "model-out", "model.lp", "path to write the assembled LP model")
	flag.StringVar(&cfg.SolutionFile, "solution-out", "solution.txt", "path the solver writes its solution to")
	flag.StringVar(&cfg.SolverBinary, "solver", "solver", "path to the external MILP solver binary")
	flag.DurationVar(&cfg.SolverTimeout, "solver-timeout", 2*time.Minute, "solver invocation timeout")
	flag.StringVar(&cfg.RunDBPath, "rundb", "runs.sqlite", "path to the sqlite run ledger")
	flag.BoolVar(&cfg.Honors, "honors", false, "student is in the honors program")
	flag.BoolVar(&cfg.S1Off, "s1off", false, "forbid Summer-1 slots")
	flag.BoolVar(&cfg.S2Off, "s2off", false, "forbid Summer-2 slots")
	flag.BoolVar(&cfg.STOff, "stoff", false, "forbid Summer-Term slots")
	flag.IntVar(&cfg.MaxNumCrsPerSem, "max-courses-per-term", 0, "general per-term course cap (0 = unset)")
	flag.IntVar(&cfg.MaxNumCrsDurThesis, "max-courses-during-thesis", 3, "course cap while the thesis course is scheduled")
	flag.StringVar(&cfg.Concentration, "concentration", "", "chosen concentration area name")
	flag.IntVar(&cfg.NumOUThisYear, "ou-taken-this-year", 0, "OU-eligible courses already taken this academic year")
	flag.Float64Var(&cfg.WeightDN, "w-dn", 1, "objective weight: completion term")
	flag.Float64Var(&cfg.WeightDL, "w-dl", 1, "objective weight: max difficulty load")
	flag.Float64Var(&cfg.WeightCr, "w-cr", 0.01, "objective weight: credits")
	flag.Float64Var(&cfg.WeightGr, "w-gr", 0, "objective weight: estimated grade")
	flag.Parse()

	entries, err := os.ReadDir(groupDir)
	if err == nil {
		for _, e := range entries {
			if !e.IsDir() && len(e.Name()) > 4 && e.Name()[len(e.Name())-4:] == ".grp" {
				cfg.GroupFiles = append(cfg.GroupFiles, groupDir+"/"+e.Name())
			}
		}
	}
	return cfg
}

func loadStudent(cfg Configuration) (*model.StudentInput, error) {
	passed, err := csvio.LoadPassedCourses(cfg.PassedFile)
	if err != nil {
		return nil, err
	}
	desired, err := csvio.LoadDesiredCourses(cfg.DesiredFile)
	if err != nil {
		return nil, err
	}
	return &model.StudentInput{
		Passed:             passed,
		Desired:            desired,
		Honors:             cfg.Honors,
		S1Off:              cfg.S1Off,
		S2Off:              cfg.S2Off,
		STOff:              cfg.STOff,
		MaxNumCrsPerSem:    cfg.MaxNumCrsPerSem,
		MaxNumCrsDurThesis: cfg.MaxNumCrsDurThesis,
		ConcentrationName:  cfg.Concentration,
		NumOUThisYear:      cfg.NumOUThisYear,
		ObjWeights: model.ObjectiveWeights{
			DN: cfg.WeightDN,
			DL: cfg.WeightDL,
			Cr: cfg.WeightCr,
			Gr: cfg.WeightGr,
		},
	}, nil
}

func printReport(cat *model.Catalog, sol *model.Solution, params *model.Params, runID string) {
	color.Cyan("\nRun %s\n", runID)

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Term", "Code", "Title", "Credits"})
	for _, t := range sol.OrderedTerms() {
		if t == 0 {
			continue
		}
		for _, id := range sol.ByTerm(cat)[t] {
			c := cat.Courses()[id]
			table.Append([]string{fmt.Sprintf("%d", t), c.Code, c.EffectiveDisplayName(), fmt.Sprintf("%d", c.Credits)})
		}
	}
	table.Render()

	color.Green("Credits already taken: %d", sol.CreditsTakenSoFar(cat))
	color.Green("Credits to take: %d", sol.CreditsToTake(cat))
	if total := sol.CreditsTakenSoFar(cat) + sol.CreditsToTake(cat); total >= params.Tc {
		color.Green("Meets graduation credit minimum of %d", params.Tc)
	} else {
		color.Yellow("Below graduation credit minimum of %d (have %d)", params.Tc, total)
	}
}

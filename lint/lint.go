// Package lint finds MustRight and MustLeft calls on [either.Either] values
// that are not guarded by a check of the matching variant.
package lint

import (
	"context"
	"errors"
	"fmt"
	"go/ast"
	"go/types"
	"iter"
	"log/slog"
	"maps"
	"runtime"
	"slices"
	"strings"

	"github.com/WinPooh32/either"
	"github.com/WinPooh32/either/internal/xslices"
	"golang.org/x/sync/errgroup"
	"golang.org/x/tools/go/ast/inspector"
	"golang.org/x/tools/go/packages"
)

// DefaultTarget is the import path of the package providing the checked Either type.
const DefaultTarget = "github.com/WinPooh32/either"

const typeName = "Either"

const pkgLoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedTypesInfo

type pkgID string

// Option configures a [Checker].
type Option func(*Checker)

// WithTargets sets import paths of packages whose Either type is checked.
func WithTargets(pkgPaths ...string) Option {
	return func(c *Checker) {
		c.targets = pkgPaths
	}
}

// WithLogger sets the logger of package progress, [slog.Default] if not set.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Checker) {
		c.logger = logger
	}
}

// Checker loads go packages and reports unguarded accessor calls in them.
type Checker struct {
	pkgs    map[pkgID]*packages.Package
	targets []string
	logger  *slog.Logger
}

// NewChecker returns a new initialized [Checker] instance.
func NewChecker(opts ...Option) (*Checker, error) {
	c := &Checker{
		pkgs:    make(map[pkgID]*packages.Package),
		targets: []string{DefaultTarget},
		logger:  slog.Default(),
	}

	for _, opt := range opts {
		opt(c)
	}

	if len(c.targets) == 0 {
		return nil, errors.New("no target packages")
	}

	if c.logger == nil {
		return nil, errors.New("logger is nil")
	}

	return c, nil
}

// Load loads Go packages with their tests by the given patterns to the [Checker] instance.
//
// Dir parameter is the directory in which to run the build system's query
// tool that provides information about the packages.
// If Dir is empty, the tool is run in the current directory.
//
// Packages that fail to load are reported as [*PackageError] joined into the
// returned error, the rest of them stay loaded.
func (c *Checker) Load(ctx context.Context, dir string, patterns ...string) (*Checker, error) {
	cfg := &packages.Config{
		Mode:    pkgLoadMode,
		Context: ctx,
		Dir:     dir,
		Tests:   true,
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("load packages: %w", err)
	}

	if c.pkgs == nil {
		c.pkgs = make(map[pkgID]*packages.Package, len(pkgs))
	}

	var errs []error

	for _, pkg := range pkgs {
		if pkg.Errors != nil || pkg.TypeErrors != nil {
			errs = append(errs, newPackageError(pkg))
			continue
		}

		if isTestMain(pkg) {
			continue
		}

		c.pkgs[pkgID(pkg.ID)] = pkg
	}

	c.logger.DebugContext(ctx, "packages loaded", "loaded", len(c.pkgs), "failed", len(errs))

	if errs != nil {
		return c, errors.Join(errs...)
	}

	return c, nil
}

// Check inspects the loaded packages.
// Returns the stream of findings, which is closed once all packages are inspected.
// A failure is sent as the last Left value of the stream, the caller must
// drain the stream until it is closed.
// The jobs parameter specifies number of used goroutines for processing, if set as 0 number of cpu cores will be used.
func (c *Checker) Check(ctx context.Context, jobs int) <-chan either.Either[error, Finding] {
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}

	resC := make(chan either.Either[error, Finding], jobs)

	go func() {
		defer close(resC)

		eg, egCtx := errgroup.WithContext(ctx)
		ids := slices.Sorted(maps.Keys(c.pkgs))

		for part := range xslices.Partition(ids, jobs) {
			eg.Go(func() error {
				wrkr := checkWorker{
					pkgs:    c.pkgs,
					targets: c.targets,
					logger:  c.logger,
					pkgIDs:  part,
					resC:    resC,
				}

				return wrkr.run(egCtx)
			})
		}

		// The consumer drains the stream, so the error is always delivered.
		if err := eg.Wait(); err != nil {
			resC <- either.Left[error, Finding](err)
		}
	}()

	return resC
}

type checkWorker struct {
	pkgs    map[pkgID]*packages.Package
	targets []string
	logger  *slog.Logger
	pkgIDs  []pkgID
	resC    chan<- either.Either[error, Finding]
}

func (cw *checkWorker) run(ctx context.Context) error {
	for _, id := range cw.pkgIDs {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("context is done: %w", err)
		}

		pkg, ok := cw.pkgs[id]
		if !ok {
			return fmt.Errorf("the package is not found by ID %s", id)
		}

		cw.logger.DebugContext(ctx, "checking package", "id", id)

		for finding := range cw.scan(pkg) {
			if err := cw.send(ctx, finding); err != nil {
				return err
			}
		}
	}

	return nil
}

func (cw *checkWorker) send(ctx context.Context, finding Finding) error {
	select {
	case cw.resC <- either.Right[error](finding):
	case <-ctx.Done():
		return fmt.Errorf("context is done: %w", ctx.Err())
	}

	return nil
}

var callsFilter = []ast.Node{
	new(ast.CallExpr),
}

func (cw *checkWorker) scan(pkg *packages.Package) iter.Seq[Finding] {
	syntax := pkg.Syntax
	if isTestPackage(pkg) {
		syntax = selectTestfiles(pkg, syntax)
	}

	in := inspector.New(syntax)

	return func(yield func(Finding) bool) {
		stopped := false

		in.WithStack(callsFilter, func(n ast.Node, push bool, stack []ast.Node) (proceed bool) {
			if stopped {
				return false
			}

			if !push {
				return true
			}

			finding, ok := cw.inspectCall(pkg, n.(*ast.CallExpr), stack)
			if !ok {
				return true
			}

			if !yield(finding) {
				// The inspector keeps visiting siblings, so remember to skip them.
				stopped = true
			}

			return !stopped
		})
	}
}

func (cw *checkWorker) inspectCall(pkg *packages.Package, call *ast.CallExpr, stack []ast.Node) (Finding, bool) {
	sel, ok := call.Fun.(*ast.SelectorExpr)
	if !ok {
		return Finding{}, false
	}

	want, ok := accessors[sel.Sel.Name]
	if !ok || !cw.isTarget(pkg.TypesInfo, sel) {
		return Finding{}, false
	}

	recv := newReceiver(pkg.TypesInfo, sel.X)

	if guarded(stack, recv, want) {
		return Finding{}, false
	}

	predicate := "IsRight"
	if want == variantLeft {
		predicate = "IsLeft"
	}

	return Finding{
		Pos:      pkg.Fset.Position(call.Pos()),
		Func:     enclosingFunc(stack),
		Receiver: recv.expr,
		Method:   sel.Sel.Name,
		Message:  fmt.Sprintf("%s.%s() called without a %s.%s() check", recv.expr, sel.Sel.Name, recv.expr, predicate),
	}, true
}

// isTarget reports whether sel selects a method of a target package's Either type.
func (cw *checkWorker) isTarget(info *types.Info, sel *ast.SelectorExpr) bool {
	selection, ok := info.Selections[sel]
	if !ok || selection.Kind() != types.MethodVal {
		return false
	}

	sig, ok := selection.Obj().Type().(*types.Signature)
	if !ok || sig.Recv() == nil {
		return false
	}

	typ := sig.Recv().Type()
	if ptr, ok := typ.(*types.Pointer); ok {
		typ = ptr.Elem()
	}

	named, ok := types.Unalias(typ).(*types.Named)
	if !ok {
		return false
	}

	obj := named.Obj()

	return obj.Name() == typeName && obj.Pkg() != nil && slices.Contains(cw.targets, obj.Pkg().Path())
}

func enclosingFunc(stack []ast.Node) string {
	for i := len(stack) - 1; i >= 0; i-- {
		if decl, ok := stack[i].(*ast.FuncDecl); ok {
			return decl.Name.Name
		}
	}

	return ""
}

func selectTestfiles(pkg *packages.Package, syntax []*ast.File) []*ast.File {
	var testfiles []*ast.File

	for _, file := range syntax {
		f := pkg.Fset.File(file.Pos())
		if f == nil {
			continue
		}

		if !strings.HasSuffix(strings.ToLower(f.Name()), "_test.go") {
			continue
		}

		testfiles = append(testfiles, file)
	}

	return testfiles
}

// isTestPackage reports whether pkg is a test variant, its non-test files are
// checked with the package itself.
func isTestPackage(pkg *packages.Package) bool {
	for _, f := range pkg.GoFiles {
		if strings.HasSuffix(f, "_test.go") {
			return true
		}
	}

	return false
}

// isTestMain reports whether pkg is the generated main package of a test binary.
func isTestMain(pkg *packages.Package) bool {
	return pkg.Name == "main" && strings.HasSuffix(pkg.ID, ".test")
}

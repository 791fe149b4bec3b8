package buildsys

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/aidarkhanov/nanoid"
	"github.com/rotisserie/eris"
	"go.starlark.net/starlark"

	"github.com/ngld/knossos/packages/galconf/pkg/platform"
)

type parserCtx struct {
	ctx          context.Context
	options      map[string]ScriptOption
	optionValues map[string]string
	yamlCache    map[string]interface{}
	filepath     string
	projectRoot  string
	target       platform.Platform
	summary      Summary
	strict       bool
	initPhase    bool
}

func getCtx(thread *starlark.Thread) *parserCtx {
	return thread.Local("parserCtx").(*parserCtx)
}

func info(thread *starlark.Thread, msg string, args ...interface{}) {
	ctx := getCtx(thread)
	pos := thread.CallFrame(1).Pos

	filepath := simplifyPath(ctx, ctx.filepath)

	log(ctx.ctx).Info().
		Msgf("%s:%d:%d: %s", filepath, pos.Line, pos.Col, fmt.Sprintf(msg, args...))
}

func warn(thread *starlark.Thread, msg string, args ...interface{}) {
	ctx := getCtx(thread)
	pos := thread.CallFrame(1).Pos

	filepath := simplifyPath(ctx, ctx.filepath)

	log(ctx.ctx).Warn().
		Msgf("%s:%d:%d: %s", filepath, pos.Line, pos.Col, fmt.Sprintf(msg, args...))
}

func option(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var name string
	var defaultValue starlark.String
	var help string

	err := starlark.UnpackArgs(fn.Name(), args, kwargs, "name", &name, "default?", &defaultValue, "help?", &help)
	if err != nil {
		return nil, err
	}

	ctx := getCtx(thread)
	if !ctx.initPhase {
		return nil, eris.New("can only be called during the init phase (in the global scope)")
	}

	ctx.options[name] = ScriptOption{
		DefaultValue: defaultValue,
		Help:         help,
	}

	value, ok := ctx.optionValues[name]
	if ok {
		return starlark.String(value), nil
	}

	return defaultValue, nil
}

// RunScript executes a configure script. The script's top level declares options; afterwards its configure
// function is called and the entries it records with summary() are returned along with the declared options.
func RunScript(ctx context.Context, params Params) (Summary, map[string]ScriptOption, error) {
	projectRoot, err := filepath.Abs(params.ProjectRoot)
	if err != nil {
		return nil, nil, err
	}

	filename, err := filepath.Abs(params.Filename)
	if err != nil {
		return nil, nil, err
	}

	logger := log(ctx).With().Str("run", nanoid.New()).Logger()
	ctx = WithLogger(ctx, &logger)

	optionValues := params.Options
	if optionValues == nil {
		optionValues = make(map[string]string)
	}

	builtins := starlark.StringDict{
		"OS":              starlark.String(runtime.GOOS),
		"ARCH":            starlark.String(runtime.GOARCH),
		"SYSTEM":          starlark.String(params.Target.System),
		"CPU_FAMILY":      starlark.String(params.Target.CPU),
		"HAS_KMS":         starlark.Bool(params.Target.System.HasKMS()),
		"info":            starlark.NewBuiltin("info", starInfo),
		"warn":            starlark.NewBuiltin("warn", starWarn),
		"error":           starlark.NewBuiltin("error", starError),
		"option":          starlark.NewBuiltin("option", option),
		"getenv":          starlark.NewBuiltin("getenv", getenv),
		"read_yaml":       starlark.NewBuiltin("read_yaml", readYaml),
		"isfile":          starlark.NewBuiltin("isfile", starIsfile),
		"gallium_drivers": starlark.NewBuiltin("gallium_drivers", galliumDrivers),
		"driver_info":     starlark.NewBuiltin("driver_info", driverInfo),
		"summary":         starlark.NewBuiltin("summary", summary),
	}

	thread := &starlark.Thread{
		Name: "main",
		Print: func(thread *starlark.Thread, msg string) {
			log(ctx).Info().Str("thread", thread.Name).Msg(msg)
		},
	}
	threadCtx := parserCtx{
		ctx:          ctx,
		filepath:     filename,
		projectRoot:  projectRoot,
		target:       params.Target,
		strict:       params.Strict,
		options:      make(map[string]ScriptOption),
		optionValues: optionValues,
		yamlCache:    make(map[string]interface{}),
		summary:      make(Summary, 0),
		initPhase:    true,
	}
	thread.SetLocal("parserCtx", &threadCtx)

	script, err := os.ReadFile(filename)
	if err != nil {
		return nil, nil, eris.Wrapf(err, "failed to read file")
	}

	log(ctx).Debug().Str("path", filename).Msgf("Configuring for %s", params.Target)

	globals, err := starlark.ExecFile(thread, simplifyPath(&threadCtx, filename), script, builtins)
	if err != nil {
		if evalError, ok := err.(*starlark.EvalError); ok {
			return nil, nil, eris.Errorf("failed to execute %s:\n%s", simplifyPath(&threadCtx, filename), evalError.Backtrace())
		}
		return nil, nil, eris.Wrap(err, "failed to execute")
	}

	for name := range optionValues {
		if _, declared := threadCtx.options[name]; !declared {
			log(ctx).Warn().Msgf("Option %s was passed but %s doesn't declare it", name, simplifyPath(&threadCtx, filename))
		}
	}

	if params.SkipConfigure {
		return threadCtx.summary, threadCtx.options, nil
	}

	configure, ok := globals["configure"]
	if !ok {
		return nil, nil, eris.Errorf("%s did not declare a configure function", simplifyPath(&threadCtx, filename))
	}

	configureFunc, ok := configure.(starlark.Callable)
	if !ok {
		return nil, nil, eris.Errorf("%s did declare a configure value but it's not a function", simplifyPath(&threadCtx, filename))
	}

	threadCtx.initPhase = false
	_, err = starlark.Call(thread, configureFunc, make(starlark.Tuple, 0), make([]starlark.Tuple, 0))
	if err != nil {
		if evalError, ok := err.(*starlark.EvalError); ok {
			return nil, nil, eris.New(evalError.Backtrace())
		}
		return nil, nil, eris.Wrapf(err, "failed configure call in %s", simplifyPath(&threadCtx, filename))
	}

	return threadCtx.summary, threadCtx.options, nil
}

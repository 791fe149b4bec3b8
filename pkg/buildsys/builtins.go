package buildsys

import (
	"os"

	"github.com/rotisserie/eris"
	"go.starlark.net/starlark"
	"gopkg.in/yaml.v3"

	"github.com/ngld/knossos/packages/galconf/pkg/drivers"
	"github.com/ngld/knossos/packages/galconf/pkg/platform"
)

func starInfo(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var message string

	err := starlark.UnpackPositionalArgs(fn.Name(), args, kwargs, 1, &message)
	if err != nil {
		return nil, err
	}

	info(thread, "%s", message)
	return starlark.None, nil
}

func starWarn(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var message string

	err := starlark.UnpackPositionalArgs(fn.Name(), args, kwargs, 1, &message)
	if err != nil {
		return nil, err
	}

	warn(thread, "%s", message)
	return starlark.None, nil
}

func starError(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var message string

	err := starlark.UnpackPositionalArgs(fn.Name(), args, kwargs, 1, &message)
	if err != nil {
		return nil, err
	}

	return nil, eris.New(message)
}

func getenv(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var key string
	var defaultValue string

	err := starlark.UnpackPositionalArgs(fn.Name(), args, kwargs, 1, &key, &defaultValue)
	if err != nil {
		return nil, err
	}

	value, ok := os.LookupEnv(key)
	if !ok {
		value = defaultValue
	}

	return starlark.String(value), nil
}

func readYaml(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var yamlFile string
	var yamlKey string
	var defaultValue starlark.Value = starlark.None

	err := starlark.UnpackPositionalArgs(fn.Name(), args, kwargs, 2, &yamlFile, &yamlKey, &defaultValue)
	if err != nil {
		return nil, err
	}

	yamlFile = normalizePath(getCtx(thread), yamlFile)

	cache := getCtx(thread).yamlCache
	doc, loaded := cache[yamlFile]
	if !loaded {
		content, err := os.ReadFile(yamlFile)
		if err != nil {
			return nil, eris.Wrapf(err, "failed to open file %s", yamlFile)
		}

		err = yaml.Unmarshal(content, &doc)
		if err != nil {
			return nil, eris.Wrapf(err, "failed to parse file %s", yamlFile)
		}

		cache[yamlFile] = doc
	}

	value, found := yamlLookup(doc, yamlKey)
	if !found {
		return defaultValue, nil
	}

	return interfaceToStarlark(thread, value)
}

func starIsfile(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var filePath string

	err := starlark.UnpackPositionalArgs(fn.Name(), args, kwargs, 1, &filePath)
	if err != nil {
		return nil, err
	}

	filePath = normalizePath(getCtx(thread), filePath)
	info, err := os.Stat(filePath)
	if err == nil && info.Mode().IsRegular() {
		return starlark.True, nil
	}
	return starlark.False, nil
}

func galliumDrivers(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var value starlark.Value = starlark.String(drivers.AutoValue)
	var system string
	var cpuFamily string

	err := starlark.UnpackArgs(fn.Name(), args, kwargs, "value?", &value, "system?", &system, "cpu_family?", &cpuFamily)
	if err != nil {
		return nil, err
	}

	ctx := getCtx(thread)
	target := ctx.target
	if system != "" {
		target.System = platform.System(system)
	}
	if cpuFamily != "" {
		target.CPU = platform.CPUFamily(cpuFamily)
	}

	var sel drivers.Selection
	switch value := value.(type) {
	case starlark.String:
		sel = drivers.ParseSelection(value.GoString())
	case starlarkIterable:
		items, err := starlarkIterable2stringSlice(value, "value")
		if err != nil {
			return nil, err
		}
		sel = drivers.FromList(items)
	default:
		return nil, eris.Errorf("for parameter value: got %s, want string or list of strings", value.Type())
	}

	result, err := drivers.Resolve(sel, target)
	if err != nil {
		return nil, err
	}

	if !sel.IsAuto() {
		problems := drivers.Check(result)
		for _, problem := range problems {
			warn(thread, "%s", problem)
		}

		if ctx.strict && len(problems) > 0 {
			return nil, eris.Errorf("found %d problems in the driver list (strict mode)", len(problems))
		}
	}

	log(ctx.ctx).Debug().
		Strs("drivers", result).
		Msgf("Resolved %s for %s", sel, target)

	return interfaceToStarlark(thread, result)
}

func driverInfo(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var name string

	err := starlark.UnpackPositionalArgs(fn.Name(), args, kwargs, 1, &name)
	if err != nil {
		return nil, err
	}

	entry, ok := drivers.Lookup(name)
	if !ok {
		return starlark.None, nil
	}

	return interfaceToStarlark(thread, map[string]string{
		"name":        entry.Name,
		"description": entry.Description,
		"status":      entry.Status.String(),
		"reason":      entry.Reason,
	})
}

func summary(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var key string
	var value starlark.Value
	var section string

	err := starlark.UnpackArgs(fn.Name(), args, kwargs, "key", &key, "value", &value, "section?", &section)
	if err != nil {
		return nil, err
	}

	ctx := getCtx(thread)
	if ctx.initPhase {
		return nil, eris.New("can only be called from configure()")
	}

	values, err := starlarkToStrings(value, key)
	if err != nil {
		return nil, err
	}

	for _, entry := range ctx.summary {
		if entry.Section == section && entry.Key == key {
			return nil, eris.Errorf("summary entry %s was already set", key)
		}
	}

	ctx.summary = append(ctx.summary, SummaryEntry{
		Section: section,
		Key:     key,
		Values:  values,
	})
	return starlark.None, nil
}

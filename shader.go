package hellogl

import (
	"fmt"
	"os"
	"strings"
)

// InfoLogLimit bounds compiler and linker diagnostics, in bytes.
const InfoLogLimit = 512

// Diagnostic tags logged by the program builder.
const (
	msgOpenVertex      = "ERROR::LOADSHADERS::COULDNOT OPEN VERTEXFILE"
	msgOpenFragment    = "ERROR::LOADSHADERS::COULDNOT OPEN FRAGMENTFILE"
	msgCompileVertex   = "ERROR::LOADSHADERS::COULDNOT COMPILE VERTEXFILE"
	msgCompileFragment = "ERROR::LOADSHADERS::COULDNOT COMPILE FRAGMENTFILE"
	msgLinkProgram     = "ERROR::LOADSHADERS::COULDNOT LINK PROGRAM"
)

// StageError describes one failed step of program construction.
// Err is set for file errors, Log for compile and link errors.
type StageError struct {
	Stage ShaderStage
	Path  string
	Err   error
	Log   string
}

func (e *StageError) Error() string {
	switch {
	case e.Err != nil:
		return fmt.Sprintf("%s shader %q: %v", e.Stage, e.Path, e.Err)
	case e.Stage == StageLink:
		return fmt.Sprintf("link failed: %s", e.Log)
	default:
		return fmt.Sprintf("%s shader %q: compile failed: %s", e.Stage, e.Path, e.Log)
	}
}

func (e *StageError) Unwrap() error { return e.Err }

// BuildError lists every step that failed while building a program.
type BuildError struct {
	Failures []*StageError
}

func (e *BuildError) Error() string {
	parts := make([]string, len(e.Failures))
	for i, f := range e.Failures {
		parts[i] = f.Error()
	}
	return "build program: " + strings.Join(parts, "; ")
}

// Unwrap exposes the individual stage failures to errors.Is and errors.As.
func (e *BuildError) Unwrap() []error {
	errs := make([]error, len(e.Failures))
	for i, f := range e.Failures {
		errs[i] = f
	}
	return errs
}

// Failed reports whether the given stage is among the failures.
func (e *BuildError) Failed(stage ShaderStage) bool {
	for _, f := range e.Failures {
		if f.Stage == stage {
			return true
		}
	}
	return false
}

// Program is a linked shader program.
type Program struct {
	ID       uint32
	uniforms map[string]int32
}

// Uniform returns the location of a uniform, querying the device once per name.
func (p *Program) Uniform(dev Device, name string) int32 {
	if loc, ok := p.uniforms[name]; ok {
		return loc
	}
	loc := dev.UniformLocation(p.ID, name)
	if loc < 0 {
		logger.Debug("uniform not found", "program", p.ID, "name", name)
	}
	if p.uniforms == nil {
		p.uniforms = make(map[string]int32)
	}
	p.uniforms[name] = loc
	return loc
}

// Delete releases the program. It is safe to call more than once.
func (p *Program) Delete(dev Device) {
	if p == nil || p.ID == 0 {
		return
	}
	dev.DeleteProgram(p.ID)
	p.ID = 0
}

// ReadShaderSource reads a shader source file.
func ReadShaderSource(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// BuildProgram compiles the vertex and fragment shader files and links
// them into a program.
//
// Every step runs even after an earlier one failed: a missing file is
// compiled as empty source and linking is always attempted, so all
// diagnostics are logged. If anything failed the program is deleted and
// a *BuildError is returned; the returned *Program is always usable.
func BuildProgram(dev Device, vertexPath, fragmentPath string) (*Program, error) {
	var failures []*StageError

	vs, failed := compileStage(dev, StageVertex, vertexPath)
	failures = append(failures, failed...)
	fs, failed := compileStage(dev, StageFragment, fragmentPath)
	failures = append(failures, failed...)

	program, infoLog, ok := dev.LinkProgram(vs, fs)
	if !ok {
		infoLog = truncateLog(infoLog)
		logger.Error(msgLinkProgram, "log", infoLog)
		failures = append(failures, &StageError{Stage: StageLink, Log: infoLog})
	}

	// The shaders are linked into the program now.
	dev.DeleteShader(vs)
	dev.DeleteShader(fs)

	if len(failures) > 0 {
		if program != 0 {
			dev.DeleteProgram(program)
		}
		return nil, &BuildError{Failures: failures}
	}

	logger.Debug("shader program linked", "program", program, "vertex", vertexPath, "fragment", fragmentPath)
	return &Program{ID: program, uniforms: make(map[string]int32)}, nil
}

// compileStage reads and compiles one stage. The shader handle is
// returned even on failure so it can be attached and deleted.
func compileStage(dev Device, stage ShaderStage, path string) (uint32, []*StageError) {
	openMsg, compileMsg := msgOpenVertex, msgCompileVertex
	if stage == StageFragment {
		openMsg, compileMsg = msgOpenFragment, msgCompileFragment
	}

	var failures []*StageError

	src, err := ReadShaderSource(path)
	if err != nil {
		logger.Error(openMsg, "path", path, "error", err)
		failures = append(failures, &StageError{Stage: stage, Path: path, Err: err})
		src = ""
	}

	shader, infoLog, ok := dev.CompileShader(stage, src)
	if !ok {
		infoLog = truncateLog(infoLog)
		logger.Error(compileMsg, "path", path, "log", infoLog)
		failures = append(failures, &StageError{Stage: stage, Path: path, Log: infoLog})
	}
	return shader, failures
}

func truncateLog(s string) string {
	s = strings.TrimRight(s, "\x00\n ")
	if len(s) > InfoLogLimit {
		s = s[:InfoLogLimit]
	}
	return s
}

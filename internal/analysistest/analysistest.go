// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package analysistest contains helpers to build SSA programs in tests.
package analysistest

import (
	"go/ast"
	"go/importer"
	"go/parser"
	"go/token"
	"go/types"
	"path/filepath"
	"testing"

	"github.com/awslabs/ar-go-fixpoint/analysis"
	"github.com/awslabs/ar-go-fixpoint/analysis/config"
	"golang.org/x/tools/go/ssa"
	"golang.org/x/tools/go/ssa/ssautil"
)

// LoadTest loads the program in the directory dir, looking for a main.go and a config.yaml. Additional files can be
// specified as extraFiles.
func LoadTest(t *testing.T, dir string, extraFiles []string) (analysis.LoadedProgram, *config.Config) {
	configFile := filepath.Join(dir, "config.yaml")
	config.SetGlobalConfig(configFile)
	files := []string{filepath.Join(dir, "./main.go")}
	for _, extraFile := range extraFiles {
		files = append(files, filepath.Join(dir, extraFile))
	}

	program, err := analysis.LoadProgram(nil, "", ssa.BuilderMode(0), false, files)
	if err != nil {
		t.Fatalf("error loading packages: %v", err)
	}
	cfg, err := config.LoadGlobal()
	if err != nil {
		t.Fatalf("error loading global config: %v", err)
	}
	return program, cfg
}

// BuildPackage type checks and builds the SSA of the single-file package src. The package may only import packages
// of the standard library.
func BuildPackage(t *testing.T, src string) *ssa.Package {
	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, "main.go", src, parser.ParseComments)
	if err != nil {
		t.Fatalf("failed to parse source: %v", err)
	}
	pkg := types.NewPackage(f.Name.Name, f.Name.Name)
	conf := &types.Config{Importer: importer.Default()}
	ssaPkg, _, err := ssautil.BuildPackage(conf, fset, pkg, []*ast.File{f}, ssa.SanityCheckFunctions)
	if err != nil {
		t.Fatalf("failed to build package: %v", err)
	}
	return ssaPkg
}

// Function returns the function called name in pkg
func Function(t *testing.T, pkg *ssa.Package, name string) *ssa.Function {
	fn := pkg.Func(name)
	if fn == nil {
		t.Fatalf("no function %s in package %s", name, pkg.Pkg.Path())
	}
	return fn
}

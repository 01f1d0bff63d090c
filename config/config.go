// SPDX-License-Identifier: MIT

// Package config loads pipeline parameters and variable declarations from
// HCL files:
//
//	pipeline {
//	  lambda_gamma = 0.25
//	  rule_reg     = "OR"
//	  alpha_seq    = [0.5, 1.0]
//	  nperm        = 2000
//	  timeout      = "30s"
//	  weights      = [1, 1, 2]
//	}
//	variable "A" { type = "g" }
//	variable "E" {
//	  type   = "c"
//	  levels = 2
//	}
//
// Every pipeline attribute is optional; unset ones keep the mixdag defaults.
// Malformed files and out-of-domain values are diag.ConfigErrors.
package config

import (
	"context"
	"time"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"

	"github.com/katalvlaran/mixdag"
	"github.com/katalvlaran/mixdag/blanket"
	"github.com/katalvlaran/mixdag/ctxlog"
	"github.com/katalvlaran/mixdag/dataset"
	"github.com/katalvlaran/mixdag/diag"
	"github.com/katalvlaran/mixdag/refine"
	"github.com/katalvlaran/mixdag/regression"
)

// fileSchema is the top-level structure of a pipeline file for decoding.
type fileSchema struct {
	Pipeline  *pipelineBlock   `hcl:"pipeline,block"`
	Variables []*variableBlock `hcl:"variable,block"`
}

type pipelineBlock struct {
	LambdaGamma *float64       `hcl:"lambda_gamma,optional"`
	RuleReg     *string        `hcl:"rule_reg,optional"`
	Threshold   *string        `hcl:"threshold,optional"`
	LambdaSel   *string        `hcl:"lambda_sel,optional"`
	AlphaSel    *string        `hcl:"alpha_sel,optional"`
	AlphaSeq    hcl.Expression `hcl:"alpha_seq,optional"`
	Folds       *int           `hcl:"folds,optional"`
	Alpha       *float64       `hcl:"alpha,optional"`
	NPerm       *int           `hcl:"nperm,optional"`
	MaxCondSize *int           `hcl:"max_cond_size,optional"`
	Pool        *string        `hcl:"pool,optional"`
	Seed        *int64         `hcl:"seed,optional"`
	Workers     *int           `hcl:"workers,optional"`
	Timeout     *string        `hcl:"timeout,optional"`
	Weights     hcl.Expression `hcl:"weights,optional"`
}

type variableBlock struct {
	Name   string `hcl:"name,label"`
	Type   string `hcl:"type"`
	Levels *int   `hcl:"levels,optional"`
	SNP    *bool  `hcl:"snp,optional"`
}

// File is a decoded pipeline file.
type File struct {
	// Filename is the name diagnostics were reported against.
	Filename string

	opts    []mixdag.Option
	vars    []dataset.Variable
	weights []float64
}

// Options returns the options set in the pipeline block, in file order.
func (f *File) Options() []mixdag.Option {
	return append([]mixdag.Option(nil), f.opts...)
}

// Variables returns the declared variables in file order.
func (f *File) Variables() []dataset.Variable {
	return append([]dataset.Variable(nil), f.vars...)
}

// Weights returns the declared sample weights (nil when unset).
func (f *File) Weights() []float64 {
	return append([]float64(nil), f.weights...)
}

// Dataset pairs the declared variables and weights with data columns.
func (f *File) Dataset(columns [][]float64) (*dataset.Dataset, error) {
	if len(f.vars) == 0 {
		return nil, diag.Configf("variable", "%s declares no variables", f.Filename)
	}

	return dataset.New(columns, f.vars, dataset.WithWeights(f.weights))
}

// Load parses and decodes the HCL file at path.
func Load(ctx context.Context, path string) (*File, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Decoding pipeline file.", "path", path)
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, diag.Configf(path, "failed to parse HCL: %s", diags.Error())
	}

	f, err := decode(file, path)
	if err != nil {
		return nil, err
	}
	logger.Debug("Successfully decoded pipeline file.", "path", path,
		"options", len(f.opts), "variables", len(f.vars))

	return f, nil
}

// Parse decodes HCL source; filename is used in diagnostics only.
func Parse(src []byte, filename string) (*File, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, diag.Configf(filename, "failed to parse HCL: %s", diags.Error())
	}

	return decode(file, filename)
}

func decode(file *hcl.File, filename string) (*File, error) {
	var schema fileSchema
	if diags := gohcl.DecodeBody(file.Body, nil, &schema); diags.HasErrors() {
		return nil, diag.Configf(filename, "failed to decode HCL: %s", diags.Error())
	}

	out := &File{Filename: filename}
	if schema.Pipeline != nil {
		if err := out.pipeline(schema.Pipeline); err != nil {
			return nil, err
		}
	}
	for _, vb := range schema.Variables {
		v, err := variable(vb)
		if err != nil {
			return nil, err
		}
		out.vars = append(out.vars, v)
	}

	return out, nil
}

// pipeline converts the set attributes of pb into options.
func (f *File) pipeline(pb *pipelineBlock) error {
	add := func(o mixdag.Option) { f.opts = append(f.opts, o) }

	if pb.LambdaGamma != nil {
		add(mixdag.WithLambdaGamma(*pb.LambdaGamma))
	}
	if pb.RuleReg != nil {
		r, err := blanket.ParseRule(*pb.RuleReg)
		if err != nil {
			return diag.Configf("rule_reg", "%v", err)
		}
		add(mixdag.WithRule(r))
	}
	if pb.Threshold != nil {
		t, err := blanket.ParseThreshold(*pb.Threshold)
		if err != nil {
			return diag.Configf("threshold", "%v", err)
		}
		add(mixdag.WithThreshold(t))
	}
	if pb.LambdaSel != nil {
		c, err := regression.ParseCriterion(*pb.LambdaSel)
		if err != nil {
			return diag.Configf("lambda_sel", "%v", err)
		}
		add(mixdag.WithLambdaSel(c))
	}
	if pb.AlphaSel != nil {
		c, err := regression.ParseCriterion(*pb.AlphaSel)
		if err != nil {
			return diag.Configf("alpha_sel", "%v", err)
		}
		add(mixdag.WithAlphaSel(c))
	}
	seq, err := numberList("alpha_seq", pb.AlphaSeq)
	if err != nil {
		return err
	}
	if seq != nil {
		add(mixdag.WithAlphaSeq(seq...))
	}
	if pb.Folds != nil {
		add(mixdag.WithFolds(*pb.Folds))
	}
	if pb.Alpha != nil {
		add(mixdag.WithAlpha(*pb.Alpha))
	}
	if pb.NPerm != nil {
		add(mixdag.WithNPerm(*pb.NPerm))
	}
	if pb.MaxCondSize != nil {
		add(mixdag.WithMaxCondSize(*pb.MaxCondSize))
	}
	if pb.Pool != nil {
		p, err := refine.ParsePool(*pb.Pool)
		if err != nil {
			return diag.Configf("pool", "%v", err)
		}
		add(mixdag.WithPool(p))
	}
	if pb.Seed != nil {
		if *pb.Seed < 0 {
			return diag.Configf("seed", "must be non-negative, got %d", *pb.Seed)
		}
		add(mixdag.WithSeed(uint64(*pb.Seed)))
	}
	if pb.Workers != nil {
		add(mixdag.WithWorkers(*pb.Workers))
	}
	if pb.Timeout != nil {
		d, err := time.ParseDuration(*pb.Timeout)
		if err != nil {
			return diag.Configf("timeout", "%v", err)
		}
		add(mixdag.WithTimeout(d))
	}
	w, err := numberList("weights", pb.Weights)
	if err != nil {
		return err
	}
	f.weights = w

	return nil
}

// numberList evaluates expr as a list of numbers; an absent attribute
// yields nil.
func numberList(field string, expr hcl.Expression) ([]float64, error) {
	if expr == nil {
		return nil, nil
	}
	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return nil, diag.Configf(field, "%s", diags.Error())
	}
	if val.IsNull() {
		return nil, nil
	}
	list, err := convert.Convert(val, cty.List(cty.Number))
	if err != nil {
		return nil, diag.Configf(field, "want a list of numbers: %v", err)
	}
	var out []float64
	if err := gocty.FromCtyValue(list, &out); err != nil {
		return nil, diag.Configf(field, "%v", err)
	}
	if out == nil {
		out = []float64{}
	}

	return out, nil
}

func variable(vb *variableBlock) (dataset.Variable, error) {
	field := "variable." + vb.Name
	tags := []rune(vb.Type)
	if len(tags) != 1 {
		return dataset.Variable{}, diag.Configf(field, "type must be \"g\" or \"c\", got %q", vb.Type)
	}
	t, err := dataset.ParseType(tags[0])
	if err != nil {
		return dataset.Variable{}, diag.Configf(field, "%v", err)
	}
	v := dataset.Variable{Name: vb.Name, Type: t, Levels: 1}
	if vb.SNP != nil {
		v.SNP = *vb.SNP
	}
	switch {
	case vb.Levels != nil:
		v.Levels = *vb.Levels
	case v.SNP:
		v.Levels = 3
	case t == dataset.Categorical:
		return dataset.Variable{}, diag.Configf(field, "categorical variables need levels")
	}

	return v, nil
}

/*
 * Copyright 2025 The RuleGo Authors.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package js runs JavaScript rules with goja.
//
// A GojaJsEngine compiles the script once and keeps a sync.Pool of VMs, each
// VM preloaded with the user defined functions of the Config (Go functions are
// set directly, strings are compiled as JavaScript) and the builtin functions.
// Executions are interrupted after Config.ScriptMaxExecutionTime.
package js

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dop251/goja"
	"github.com/rulego/rowparser/api/types"
	"github.com/rulego/rowparser/builtin/funcs"
)

// GojaJsEngine goja js engine
type GojaJsEngine struct {
	vmPool            sync.Pool
	config            types.Config
	jsScript          *goja.Program
	jsUdfProgramCache map[string]*goja.Program
}

// NewGojaJsEngine compiles jsScript and prepares the VM pool.
// fromVars are set as globals in every VM.
func NewGojaJsEngine(config types.Config, jsScript string, fromVars map[string]interface{}) (*GojaJsEngine, error) {
	if config.Logger == nil {
		config.Logger = types.DefaultLogger()
	}
	program, err := goja.Compile("", jsScript, true)
	if err != nil {
		return nil, err
	}
	jsEngine := &GojaJsEngine{
		config:   config,
		jsScript: program,
	}
	if err = jsEngine.PreCompileJs(config); err != nil {
		return nil, err
	}
	jsEngine.vmPool = sync.Pool{
		New: func() interface{} {
			return jsEngine.NewVm(config, fromVars)
		},
	}
	return jsEngine, nil
}

// PreCompileJs compiles the JavaScript udfs of the config.
func (g *GojaJsEngine) PreCompileJs(config types.Config) error {
	var jsUdfProgramCache = make(map[string]*goja.Program)
	for k, v := range config.Udf {
		if jsFuncStr, ok := v.(string); ok {
			if p, err := goja.Compile(k, jsFuncStr, true); err != nil {
				return err
			} else {
				jsUdfProgramCache[k] = p
			}
		}
	}
	g.jsUdfProgramCache = jsUdfProgramCache
	return nil
}

// NewVm new a js VM
func (g *GojaJsEngine) NewVm(config types.Config, fromVars map[string]interface{}) *goja.Runtime {
	vm := goja.New()

	for k, v := range fromVars {
		if err := vm.Set(k, v); err != nil {
			config.Logger.Printf("set fromVar %s error: %s", k, err.Error())
		}
	}

	for name, fn := range funcs.UdfMap.GetAll() {
		if err := vm.Set(name, fn); err != nil {
			config.Logger.Printf("set builtin function %s error: %s", name, err.Error())
		}
	}

	for k, v := range config.Udf {
		var err error
		if _, ok := v.(string); ok {
			if p, exists := g.jsUdfProgramCache[k]; exists {
				_, err = vm.RunProgram(p)
			}
		} else {
			err = vm.Set(k, v)
		}
		if err != nil {
			config.Logger.Printf("parse js script=%s error: %s", k, err.Error())
		}
	}

	cancel := g.startTimeout(vm)
	_, err := vm.RunProgram(g.jsScript)
	cancel()
	vm.ClearInterrupt()

	if err != nil {
		config.Logger.Printf("js vm error: %s", err.Error())
	}
	return vm
}

// Execute calls the global function functionName with the arguments.
func (g *GojaJsEngine) Execute(functionName string, argumentList ...interface{}) (out interface{}, err error) {
	defer func() {
		if caught := recover(); caught != nil {
			err = fmt.Errorf("%s", caught)
		}
	}()

	vm := g.vmPool.Get().(*goja.Runtime)
	defer g.vmPool.Put(vm)

	f, ok := goja.AssertFunction(vm.Get(functionName))
	if !ok {
		return nil, errors.New(functionName + " is not a function")
	}

	var params []goja.Value
	if len(argumentList) > 0 {
		params = make([]goja.Value, len(argumentList))
		for i, v := range argumentList {
			params[i] = vm.ToValue(v)
		}
	}

	cancel := g.startTimeout(vm)
	res, err := f(goja.Undefined(), params...)
	cancel()
	// An interrupted VM stays interrupted until cleared.
	vm.ClearInterrupt()
	if err != nil {
		return nil, err
	}
	return res.Export(), nil
}

func (g *GojaJsEngine) Stop() {
}

// startTimeout interrupts the VM after ScriptMaxExecutionTime and returns the
// function that cancels it. Once cancel returns, the interrupt callback is
// either cancelled or finished, so ClearInterrupt afterwards cannot be undone.
func (g *GojaJsEngine) startTimeout(vm *goja.Runtime) (cancel func()) {
	if g.config.ScriptMaxExecutionTime <= 0 {
		return func() {}
	}
	fired := make(chan struct{})
	timer := time.AfterFunc(g.config.ScriptMaxExecutionTime, func() {
		defer close(fired)
		vm.Interrupt("execution timeout")
	})
	return func() {
		if !timer.Stop() {
			<-fired
		}
	}
}

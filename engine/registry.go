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

package engine

import (
	"errors"
	"fmt"
	"sync"

	"github.com/rulego/rowparser/api/types"
	"github.com/rulego/rowparser/components/transform"
)

// Registry is the default registry for rule components.
var Registry = new(RuleComponentRegistry)

var _ types.RuleComponentRegistry = (*RuleComponentRegistry)(nil)

// init registers the built-in components to the default registry.
func init() {
	mustRegister(Registry, transform.Registry.Components()...)
}

// mustRegister panics when a component type is registered twice.
func mustRegister(registry *RuleComponentRegistry, components ...types.RuleComponent) {
	for _, component := range components {
		if err := registry.Register(component); err != nil {
			panic(fmt.Errorf("register built-in component: %w", err))
		}
	}
}

// RuleComponentRegistry is a registry for rule components.
type RuleComponentRegistry struct {
	// components is a map of rule component prototypes by type.
	components map[string]types.RuleComponent
	sync.RWMutex
}

// Register adds a rule component to the registry.
func (r *RuleComponentRegistry) Register(component types.RuleComponent) error {
	r.Lock()
	defer r.Unlock()
	if r.components == nil {
		r.components = make(map[string]types.RuleComponent)
	}
	if _, ok := r.components[component.Type()]; ok {
		return errors.New("the component already exists. componentType=" + component.Type())
	}
	r.components[component.Type()] = component
	return nil
}

// Unregister removes a component from the registry by its type.
func (r *RuleComponentRegistry) Unregister(componentType string) error {
	r.Lock()
	defer r.Unlock()
	if _, ok := r.components[componentType]; !ok {
		return fmt.Errorf("%w: componentType=%s", types.ErrComponentNotFound, componentType)
	}
	delete(r.components, componentType)
	return nil
}

// NewRule creates a component of componentType and initialises it with configuration.
func (r *RuleComponentRegistry) NewRule(componentType string, config types.Config, configuration types.Configuration) (types.RuleComponent, error) {
	r.RLock()
	prototype, ok := r.components[componentType]
	r.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: componentType=%s", types.ErrComponentNotFound, componentType)
	}
	component := prototype.New()
	if err := component.Init(config, configuration); err != nil {
		return nil, err
	}
	return component, nil
}

// Components returns a map of all registered components.
func (r *RuleComponentRegistry) Components() map[string]types.RuleComponent {
	r.RLock()
	defer r.RUnlock()
	var components = map[string]types.RuleComponent{}
	for k, v := range r.components {
		components[k] = v
	}
	return components
}

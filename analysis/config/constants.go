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

package config

const (
	// SolverModeDrain is the config value selecting solver passes that visit every reachable vertex
	SolverModeDrain = "drain"
	// SolverModeEarlyStop is the config value selecting solver passes that stop on the first vertex dequeued twice
	SolverModeEarlyStop = "early-stop"
	// DefaultSolverMode is the solver mode used when the config does not specify one
	DefaultSolverMode = SolverModeDrain
	// DefaultMaxCycles is the default maximum number of cycles reported per graph
	DefaultMaxCycles = 20
)

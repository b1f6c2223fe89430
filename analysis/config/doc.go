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


/*
Package config provides a simple way to manage configuration files.

Use [LoadFile](filename) to load a configuration from a specific filename, or [Load] to parse the contents of a file.

Use [SetGlobalConfig](filename) to set filename as the global config, and then [LoadGlobal]() to load the global config.

A config file should be in yaml format. The top-level fields can be any of the fields defined in the Config
struct type. For example, a valid config file is as follows:

	options:
	  log-level: 4
	  solver-mode: early-stop
	  func-filter: "^main\\."
	  verify: true

# Logging

[NewLogGroup] returns the leveled loggers configured by the log-level option: 1 for errors only, up to 5 for traces
of every transfer function call made by the solvers.
*/
package config

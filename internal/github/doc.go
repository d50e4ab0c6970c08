// Copyright 2025 GitPulse HQ
//
// Licensed under the Business Source License 1.1 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://mariadb.com/bsl11
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package github implements the GitHub GraphQL API consumer used by
// gitpulse. It exposes a small Client interface covering the three
// queries the tool needs (user profile, repository language sizes, and
// the contribution calendar) along with a retrying decorator and a mock
// implementation for tests.
//
// All requests go to a single configurable GraphQL endpoint
// (https://api.github.com/graphql by default) authenticated with a
// bearer token, and responses are size-limited to guard against
// pathological payloads.
package github

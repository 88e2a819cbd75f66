package ai

import "fmt"

// promptTemplate is the single instruction template shared by every
// provider. The staged diff is interpolated verbatim; nothing else
// varies between providers.
const promptTemplate = `You are a commit assistant and an expert in Conventional Commits.

Analyze this diff and generate a commit message following the Conventional Commits standard:

%s

Required format:
<type>[optional scope]: <concise description>

Allowed types:
- feat: A new feature
- fix: A bug fix
- docs: Documentation changes
- style: Formatting changes
- refactor: Code refactoring
- perf: Performance improvements
- test: Adding or adjusting tests
- chore: Maintenance tasks
- build: Build system changes
- ci: CI/CD changes
- revert: Reverts a previous commit

Respond ONLY with the commit message, without extra commentary.`

// BuildPrompt renders the shared prompt with the given diff.
func BuildPrompt(diff string) string {
	return fmt.Sprintf(promptTemplate, diff)
}

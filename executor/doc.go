// Package executor provides the code-execution facility used by quiz
// questions with a ":Code:" or ":Choices:" section.
//
// A Runner takes program source text and returns everything the program
// printed to standard output. Three runners are provided:
//
//   - Echo: returns its input unchanged. Choices sections are encoded in
//     the choice protocol (see package dsl) and need no real execution.
//   - Local: writes the source to a temporary directory and runs a
//     configured command there (for example "java Main.java").
//   - Container: does the same inside a long-lived Docker container with
//     networking disabled, so template authors cannot reach the host.
//
// # Graceful Degradation
//
// NewContainer never fails just because Docker is missing. When the daemon
// cannot be reached, IsAvailable returns false and Run returns
// quizgen.ErrRunnerUnavailable; callers can fall back to Local.
//
// # Example
//
//	runner, err := executor.NewContainer(executor.ContainerConfig{
//	    Image:      "eclipse-temurin:21-jdk",
//	    Command:    []string{"java", "Main.java"},
//	    SourceFile: "Main.java",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer runner.Close(context.Background())
//
//	stdout, err := runner.Run(ctx, source)
package executor

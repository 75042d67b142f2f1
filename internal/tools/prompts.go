package tools

import (
	"fmt"
	"strings"
)

func codePrompt(prompt, language string) string {
	return fmt.Sprintf("Generate %s code for: %s\n\nOnly provide the code without any explanations or markdown formatting.", language, prompt)
}

func explainPrompt(code string) string {
	return fmt.Sprintf("Explain the following code in detail:\n\n```\n%s\n```\n\nProvide a clear, line-by-line explanation.", code)
}

func improvePrompt(code, focus string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Improve the following code:\n\n```\n%s\n```\n\n", code)
	if focus != "" {
		fmt.Fprintf(&sb, "Specifically focus on: %s\n\n", focus)
	} else {
		sb.WriteString("Focus on improving: performance, readability, and best practices.\n\n")
	}
	sb.WriteString("Only provide the improved code without explanations.")
	return sb.String()
}

func testPrompt(code, framework string) string {
	return fmt.Sprintf(`Generate tests for the following code using %s:

`+"```"+`
%s
`+"```"+`

Create comprehensive tests that cover different scenarios and edge cases.
Only provide the test code without any explanations.`, framework, code)
}

func commandPrompt(operation string) string {
	return fmt.Sprintf(`Convert the following operation into a safe shell command:
"%s"

Rules:
1. NEVER generate dangerous commands (rm -rf /, sudo, etc.)
2. Only generate file/directory operations (ls, mkdir, cat, touch, echo, cd, pwd, cp, mv, etc.)
3. Make the command as simple as possible
4. For writing file content, use echo with redirection or cat with heredoc when appropriate
5. Return ONLY the command, no explanations or markdown

Example input: "List files in current directory"
Example output: ls -la`, operation)
}

func detectProjectPrompt(description string) string {
	return fmt.Sprintf(`Based on this project description, determine what type of project it is and how it should be created.
Project description: "%s"

Return a JSON object with the following structure:
{
    "project_type": "react|vue|angular|nextjs|nuxt|express|flask|django|...",
    "use_cli": true|false,
    "cli_commands": ["command 1", "command 2", ...] if use_cli is true,
    "package_manager": "npm|yarn|pnpm"
}

Only provide the JSON without any explanations or additional text.`, description)
}

func manifestPrompt(description string) string {
	return fmt.Sprintf(`For the project described as: "%s"

1. Create a detailed project structure with necessary files
2. For each file, provide the complete code content
3. Include appropriate configuration files
4. Format the response as a JSON object with the following structure:

{
    "project_name": "name of the project",
    "description": "brief description of what the project does",
    "files": [
        {
            "path": "relative/path/to/file.ext",
            "content": "full content of the file"
        }
    ]
}

Only provide the JSON without any explanations or additional text.`, description)
}

func projectCommandsPrompt(description, projectPath string) string {
	return fmt.Sprintf(`For the project described as: "%s" to be created in path "%s", use the standard commands of its ecosystem (for example npm init and then all dependencies for express).

Generate a series of shell commands to:
1. Create the necessary directory structure
2. Create all required files with their content
3. Include appropriate configuration files

Format the response as a list of commands, one per line.
Each file content should be created using echo with heredoc or similar techniques.

Only provide the commands without any explanations or markdown.`, description, projectPath)
}

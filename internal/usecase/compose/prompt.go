package compose

import (
	"fmt"
	"strings"
	"time"
)

const systemPrompt = "You are an expert email designer and meeting analyst who creates comprehensive, " +
	"professional HTML meeting summaries with actionable insights and modern visual design."

// buildPrompt assembles the single instruction block sent to the model
func buildPrompt(req Request, sig Signature) string {
	name := req.RecipientName
	var b strings.Builder

	fmt.Fprintf(&b, "**Role:** You are Veritas AI, an expert AI assistant specializing in creating professional, comprehensive, and visually appealing HTML meeting summaries.\n\n")
	fmt.Fprintf(&b, "**Objective:** Generate a detailed and personalized meeting summary email for **%s**. The email must be a clean, complete HTML document with inline CSS for maximum compatibility.\n\n", name)

	b.WriteString("**Critical Instructions:**\n")
	b.WriteString("1. **Output Format:** Respond with ONLY the raw HTML code. Do NOT include markdown, code block syntax (like ```html), or any explanations.\n")
	b.WriteString("2. **Styling:** Use inline CSS for all styling. Ensure the design is modern, professional, and mobile-responsive. Use gradients and a clean layout.\n")
	fmt.Fprintf(&b, "3. **Personalization:** The content must be tailored to **%s**. Analyze the transcript to find their contributions, assign them specific action items, and reference their role.\n\n", name)

	b.WriteString("**Content Structure (must include these sections):**\n")
	b.WriteString("1. **Header:** A visually appealing header with the meeting title.\n")
	fmt.Fprintf(&b, "2. **Personalized Greeting:** Address **%s** directly.\n", name)
	b.WriteString("3. **Executive Summary:** A brief, high-level overview of the key outcomes and decisions.\n")
	b.WriteString("4. **Key Discussion Points:** A bulleted list of the main topics discussed.\n")
	fmt.Fprintf(&b, "5. **Action Items (Personalized):** A clear, actionable list of tasks assigned specifically to **%s**. For each item, specify the task and deadline if mentioned. Use a format like `<li><strong>Task:</strong> [Description] - <strong>Due:</strong> [Date]</li>`.\n", name)
	b.WriteString("6. **Next Steps:** General follow-up tasks for the team.\n")
	b.WriteString("7. **Participant List:** A summary of who attended the meeting.\n")
	fmt.Fprintf(&b, "8. **Signature:** Sign off as \"%s, %s\".\n\n", sig.Name, sig.Role)

	b.WriteString("**Context for this Email:**\n")
	fmt.Fprintf(&b, "- **Meeting Title:** %s\n", req.MeetingTitle)
	fmt.Fprintf(&b, "- **Recipient:** %s\n\n", name)

	if m := req.Meeting; m != nil {
		b.WriteString("### Meeting Details\n")
		fmt.Fprintf(&b, "- **Meeting ID:** %s\n", orNA(m.ID))
		fmt.Fprintf(&b, "- **Organizer:** %s\n", orNA(m.OrganizerEmail))
		fmt.Fprintf(&b, "- **Status:** %s\n", orNA(m.Status))
		duration := notAvailable
		if m.DurationMinutes != nil {
			duration = fmt.Sprintf("%d", *m.DurationMinutes)
		}
		fmt.Fprintf(&b, "- **Duration:** %s minutes\n", duration)
		created := notAvailable
		if m.CreatedAt != nil {
			created = m.CreatedAt.Format(time.RFC3339)
		}
		fmt.Fprintf(&b, "- **Timestamp:** %s\n\n", created)
	}

	if len(req.Participants) > 0 {
		fmt.Fprintf(&b, "### Meeting Participants (%d total)\n", len(req.Participants))
		for _, p := range req.Participants {
			fmt.Fprintf(&b, "- %s (%s)\n", orDefault(p.Name, "Unknown"), orDefault(p.Email, "No email"))
		}
		b.WriteString("\n")
	}

	b.WriteString("**Source Transcript to Analyze:**\n---\n")
	b.WriteString(req.Transcript)
	b.WriteString("\n---\n\n")
	b.WriteString("Now, generate the complete HTML email based on these instructions.\n")
	fmt.Fprintf(&b, "Sign as \"%s, %s\" from \"%s\".\n", sig.Name, sig.Role, sig.Email)

	return b.String()
}

// stripCodeFence removes a markdown code fence the model may wrap its reply in.
// A ```html fence keeps what lies between it and the next fence; otherwise
// the text between the first two ``` markers is kept.
func stripCodeFence(content string) string {
	const fence = "```"
	if i := strings.Index(content, fence+"html"); i >= 0 {
		rest := content[i+len(fence+"html"):]
		if j := strings.Index(rest, fence); j >= 0 {
			rest = rest[:j]
		}
		return strings.TrimSpace(rest)
	}
	if i := strings.Index(content, fence); i >= 0 {
		rest := content[i+len(fence):]
		if j := strings.Index(rest, fence); j >= 0 {
			rest = rest[:j]
		}
		return strings.TrimSpace(rest)
	}
	return content
}

func orNA(s string) string {
	return orDefault(s, notAvailable)
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

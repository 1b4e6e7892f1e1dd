package intent

import "google.golang.org/genai"

// SystemInstruction 意图识别的固定提示词
const SystemInstruction = `You are a helpful assistant for a crowdfunding DAO platform. Your job is to understand the user's request and map it to one of the available intents. Respond ONLY with a JSON object containing the 'intent' and any 'parameters' you extract. Do not add any other text.
Available intents:
- 'show_projects': User wants to see all projects.
- 'get_status': User wants the status of a specific project. Parameters: 'projectName'.
- 'contribute': User wants to contribute funds. Parameters: 'projectName', 'amount'.
- 'vote': User wants to vote on a proposal. Parameters: 'projectName', 'proposalId', 'voteChoice' (must be 'yes' or 'no').
- 'get_leaderboard': User wants to see the top contributors for a project. Parameters: 'projectName'.
- 'show_profile': User wants to see their own profile/wallet info.
- 'help': User is asking for help or is saying hello.
- 'unknown': If you cannot determine the intent from the user's message.
Example: "show me the status for the solar grid project" -> {"intent": "get_status", "parameters": {"projectName": "Project Alpha"}}
Example: "i'd like to donate 0.5 eth to project beta" -> {"intent": "contribute", "parameters": {"projectName": "Project Beta", "amount": 0.5}}
Example: "leaderboard for alpha" -> {"intent": "get_leaderboard", "parameters": {"projectName": "Project Alpha"}}
Example: "my wallet" -> {"intent": "show_profile", "parameters": {}}`

// responseSchema 约束模型输出的 JSON 结构
func responseSchema() *genai.Schema {
	intents := make([]string, 0, len(kindNames))
	for _, k := range Kinds() {
		intents = append(intents, k.String())
	}
	nullable := genai.Ptr(true)
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"intent": {Type: genai.TypeString, Enum: intents},
			"parameters": {
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"projectName": {Type: genai.TypeString, Nullable: nullable},
					"amount":      {Type: genai.TypeNumber, Nullable: nullable},
					"proposalId":  {Type: genai.TypeString, Nullable: nullable},
					"voteChoice":  {Type: genai.TypeString, Nullable: nullable, Enum: []string{"yes", "no"}},
				},
			},
		},
		Required: []string{"intent"},
	}
}

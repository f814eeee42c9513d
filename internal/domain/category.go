package domain

type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Icon        string `json:"icon"`
	Description string `json:"description"`
}

const (
	TextGenerationSlug    = "text-generation"
	ImageGenerationSlug   = "image-generation"
	CodingAssistanceSlug  = "coding-assistance"
	VideoGenerationSlug   = "video-generation"
	VoiceGenerationSlug   = "voice-generation"
	ResearchAssistantSlug = "research-assistant"
	FinanceSlug           = "finance"
	ThreeDModelsSlug      = "3d-models"
	PresentationsSlug     = "presentations"
	AutomationSlug        = "automation"
	GameAssetsSlug        = "game-assets"
	PodcastGenerationSlug = "podcast-generation"
)

var Categories = []Category{
	{ID: TextGenerationSlug, Name: "Text Generation", Icon: "fas fa-keyboard", Description: "AI writing assistants, content creators, and text completion tools"},
	{ID: ImageGenerationSlug, Name: "Image Generation", Icon: "fas fa-palette", Description: "Create images, art, and graphics from text descriptions"},
	{ID: CodingAssistanceSlug, Name: "Coding Assistance", Icon: "fas fa-code", Description: "Code completion, debugging, and programming help"},
	{ID: VideoGenerationSlug, Name: "Video Generation", Icon: "fas fa-video", Description: "Create and edit videos with AI"},
	{ID: VoiceGenerationSlug, Name: "Voice Generation", Icon: "fas fa-microphone", Description: "Text-to-speech, voice cloning, and audio synthesis"},
	{ID: ResearchAssistantSlug, Name: "Research Assistant", Icon: "fas fa-search", Description: "Academic research, data analysis, and summarization"},
	{ID: FinanceSlug, Name: "Finance AI", Icon: "fas fa-chart-line", Description: "Financial analysis, trading, and investment tools"},
	{ID: ThreeDModelsSlug, Name: "3D Models", Icon: "fas fa-cube", Description: "Create and modify 3D models with AI"},
	{ID: PresentationsSlug, Name: "Presentations", Icon: "fas fa-chart-pie", Description: "AI-powered presentation creators and designers"},
	{ID: AutomationSlug, Name: "Automation", Icon: "fas fa-robot", Description: "Workflow automation and process optimization"},
	{ID: GameAssetsSlug, Name: "Game Assets", Icon: "fas fa-gamepad", Description: "Create game characters, environments, and assets"},
	{ID: PodcastGenerationSlug, Name: "Podcast Generation", Icon: "fas fa-podcast", Description: "AI-generated podcasts and audio content"},
}

func FindCategory(id string) (Category, bool) {
	for _, c := range Categories {
		if c.ID == id {
			return c, true
		}
	}
	return Category{}, false
}

func IsKnownCategory(id string) bool {
	_, ok := FindCategory(id)
	return ok
}

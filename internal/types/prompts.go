package types

// HeadlinePrompt asks the LLM for a short tabloid-style headline for one
// clip. The reply must be JSON so the caller can parse it reliably.
// Args: category, video title, transcript excerpt.
const HeadlinePrompt = `Você escreve manchetes curtas e chamativas para cortes de vídeo de fofoca de celebridades.
Categoria: %s
Título do vídeo: %s
Trecho da transcrição: %s

Responda APENAS com JSON neste formato:
{"headline": "MANCHETE EM CAIXA ALTA COM NO MÁXIMO 60 CARACTERES"}`

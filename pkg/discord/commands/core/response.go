package core

import (
	"github.com/bwmarrin/discordgo"
)

// MaxContentLength is the longest message content Discord accepts.
const MaxContentLength = 2000

// MaxAutocompleteChoices is the most choices an autocomplete reply may carry.
const MaxAutocompleteChoices = 25

// ResponseType define tipos de resposta padronizados
type ResponseType int

const (
	ResponsePlain ResponseType = iota
	ResponseError
)

// ResponseConfig configura opções de resposta
type ResponseConfig struct {
	Ephemeral bool
}

// Responder gerencia todas as respostas de interação
type Responder struct {
	session *discordgo.Session
	config  ResponseConfig
}

// NewResponder cria um novo gerenciador de respostas
func NewResponder(session *discordgo.Session) *Responder {
	return &Responder{session: session}
}

// WithConfig define configurações para a próxima resposta
func (r *Responder) WithConfig(config ResponseConfig) *Responder {
	return &Responder{session: r.session, config: config}
}

// Text envia o conteúdo sem prefixo
func (r *Responder) Text(i *discordgo.InteractionCreate, content string) error {
	return r.sendResponse(i, content, ResponsePlain)
}

// Error envia uma resposta de erro, sempre ephemeral
func (r *Responder) Error(i *discordgo.InteractionCreate, message string) error {
	config := r.config
	config.Ephemeral = true
	return r.WithConfig(config).sendResponse(i, message, ResponseError)
}

// Ephemeral envia uma resposta ephemeral simples
func (r *Responder) Ephemeral(i *discordgo.InteractionCreate, message string) error {
	config := r.config
	config.Ephemeral = true
	return r.WithConfig(config).Text(i, message)
}

// sendResponse envia uma resposta de texto
func (r *Responder) sendResponse(i *discordgo.InteractionCreate, message string, responseType ResponseType) error {
	content := TruncateContent(formatTextMessage(message, responseType), MaxContentLength)

	var flags discordgo.MessageFlags
	if r.config.Ephemeral {
		flags = discordgo.MessageFlagsEphemeral
	}

	return r.session.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   flags,
		},
	})
}

// formatTextMessage formata mensagem de texto baseada no tipo
func formatTextMessage(message string, responseType ResponseType) string {
	if responseType == ResponseError {
		return "❌ " + message
	}
	return message
}

// Autocomplete envia uma resposta de autocomplete
func (r *Responder) Autocomplete(i *discordgo.InteractionCreate, choices []*discordgo.ApplicationCommandOptionChoice) error {
	if len(choices) > MaxAutocompleteChoices {
		choices = choices[:MaxAutocompleteChoices]
	}
	if choices == nil {
		choices = []*discordgo.ApplicationCommandOptionChoice{}
	}

	return r.session.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionApplicationCommandAutocompleteResult,
		Data: &discordgo.InteractionResponseData{Choices: choices},
	})
}

// DeferResponse adia a resposta (para processamento longo)
func (r *Responder) DeferResponse(i *discordgo.InteractionCreate, ephemeral bool) error {
	var flags discordgo.MessageFlags
	if ephemeral {
		flags = discordgo.MessageFlagsEphemeral
	}

	return r.session.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Flags: flags,
		},
	})
}

// EditResponse edita uma resposta já enviada
func (r *Responder) EditResponse(i *discordgo.InteractionCreate, content string) error {
	content = TruncateContent(content, MaxContentLength)
	_, err := r.session.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
		Content: &content,
	})
	return err
}

package page

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

type translation struct {
	key, msg string
}

// Catalog keys are the English strings.
var translations = map[language.Tag][]translation{
	language.BrazilianPortuguese: {
		{"See yourself through the decades.", "Veja-se através das décadas."},
		{"Upload Photo", "Enviar foto"},
		{"Click to Begin", "Clique para começar"},
		{"Upload", "Enviar"},
		{"Replace Photo", "Trocar foto"},
		{"Choose a decade", "Escolha uma década"},
		{"Your photo", "Sua foto"},
		{"Restyled photo", "Foto transformada"},
		{"Download", "Baixar"},
		{"New Photo", "Nova foto"},
		{"Try Again", "Tentar novamente"},
		{"Or pick another decade", "Ou escolha outra década"},

		{"Warming up the time machine...", "Aquecendo a máquina do tempo..."},
		{"Searching for vintage pixels...", "Procurando pixels antigos..."},
		{"Applying retro filters...", "Aplicando filtros retrô..."},
		{"Styling your hair for the decade...", "Penteando seu cabelo para a década..."},
		{"Choosing the perfect outfit...", "Escolhendo a roupa perfeita..."},
		{"Traveling through the digital timeline...", "Viajando pela linha do tempo digital..."},
		{"Almost there, don't touch the dial!", "Quase lá, não mexa no botão!"},

		{"Please upload a valid image file.", "Envie um arquivo de imagem válido."},
		{"Failed to generate image. API_KEY environment variable is not set.", "Falha ao gerar a imagem. A variável de ambiente API_KEY não está definida."},
		{"Failed to generate image. No image was generated. The model may have refused the request.", "Falha ao gerar a imagem. Nenhuma imagem foi gerada. O modelo pode ter recusado o pedido."},
		{"Failed to generate image. The image service could not be reached.", "Falha ao gerar a imagem. Não foi possível acessar o serviço de imagens."},
	},
}

var pageCatalog = buildCatalog()

func buildCatalog() catalog.Catalog {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for tag, entries := range translations {
		for _, e := range entries {
			if err := b.SetString(tag, e.key, e.msg); err != nil {
				panic(err)
			}
			if err := b.SetString(language.English, e.key, e.key); err != nil {
				panic(err)
			}
		}
	}
	return b
}

// Printer returns a printer that translates catalog keys into locale.
func Printer(locale language.Tag) *message.Printer {
	return message.NewPrinter(locale, message.Catalog(pageCatalog))
}

package candidateapimodels

import (
	"hr-pipeline-backend/models"
	emailtemplateapimodels "hr-pipeline-backend/models/api/email-template"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTransitionRequestValidate(t *testing.T) {
	incomplete := &emailtemplateapimodels.EmailTemplateData{Name: "offer"}

	t.Run(`target stage required check`, func(t *testing.T) {
		require.NotNil(t, TransitionRequest{}.Validate())
	})

	t.Run(`incomplete inline template rejected check`, func(t *testing.T) {
		req := TransitionRequest{
			TargetStage:    models.StageOffer,
			InlineTemplate: incomplete,
		}
		require.NotNil(t, req.Validate())
	})

	t.Run(`inline template ignored when email skipped check`, func(t *testing.T) {
		req := TransitionRequest{
			TargetStage:    models.StageOffer,
			SkipAutoEmail:  true,
			InlineTemplate: incomplete,
		}
		require.Nil(t, req.Validate())
	})

	t.Run(`override and inline template together rejected check`, func(t *testing.T) {
		templateID := "t1"
		req := TransitionRequest{
			TargetStage:        models.StageOffer,
			TemplateOverrideID: &templateID,
			InlineTemplate: &emailtemplateapimodels.EmailTemplateData{
				Name:     "offer",
				Subject:  "Offer",
				HtmlBody: "<p>Hi</p>",
			},
		}
		require.NotNil(t, req.Validate())
	})
}

package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/climbsoft/climb-delivery-api/services"
	"github.com/climbsoft/climb-delivery-api/utils"
)

// UploadMenuImage handles POST /api/v1/uploads/menu-image - uploads a product
// photo or restaurant logo to S3 and returns the storage key plus a presigned
// URL. The key is then attached to a product or restaurant via its own endpoint.
func UploadMenuImage(c *gin.Context) {
	if _, ok := currentDashboardUser(c); !ok {
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "MISSING_FILE",
				"message": "Image file is required (multipart field 'image')",
			},
		})
		return
	}

	imageService := services.GetImageService()
	if imageService == nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "SERVICE_UNAVAILABLE",
				"message": "Image service is not configured",
			},
		})
		return
	}

	imageKey, err := imageService.UploadImage(fileHeader)
	if err != nil {
		if uploadErr, ok := err.(*utils.FileUploadError); ok {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    uploadErr.Code,
					"message": uploadErr.Message,
				},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UPLOAD_FAILED",
				"message": "Failed to upload image",
			},
		})
		return
	}

	url, err := imageService.GetImageURL(imageKey)
	if err != nil {
		// The upload succeeded; return the key without a URL
		url = ""
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data": gin.H{
			"image_s3_key": imageKey,
			"image_url":    url,
		},
	})
}

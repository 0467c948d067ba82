// Package manifest builds QIIME 2 paired-end manifests from read file listings.
//
// A [Builder] derives a sample identifier from each file name using the
// literal suffix of a [Tag], pairs forward and reverse reads by identifier,
// and returns a [domain.Manifest]. [WriteFile] persists the manifest text.
//
//	fwd, _ := manifest.ParseTag("*R1.fastq")
//	rev, _ := manifest.ParseTag("*R2.fastq")
//	res, err := manifest.New(fwd, rev).BuildDir("./reads")
//	if err != nil {
//	    return err
//	}
//	return manifest.WriteFile("QIIME2_manifest.txt", res.Manifest)
package manifest
